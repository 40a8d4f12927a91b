package services

import (
	"staff-forge.com/staff-forge/internal/authz"
	apperrors "staff-forge.com/staff-forge/internal/errors"
)

func requireLogin(cu authz.CurrentUser) error {
	if !cu.Authenticated {
		return apperrors.ErrLoginRequired
	}
	return nil
}

func requirePrivilege(cu authz.CurrentUser) error {
	if !authz.IsPrivileged(cu) {
		return apperrors.ErrForbidden
	}
	return nil
}
