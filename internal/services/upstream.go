package services

import (
	"errors"

	"github.com/hireai/portal/internal/client"
	"github.com/hireai/portal/internal/utils"
)

// upstream turns a REST client failure into an AppError that keeps the
// backend's message. AppErrors pass through untouched.
func upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *utils.AppError
	if errors.As(err, &ae) {
		return err
	}
	var ce *client.Error
	if errors.As(err, &ce) {
		return utils.E(ce.Code(), op, ce.Message, ce)
	}
	return utils.E(utils.CodeInternal, op, "unexpected error", err)
}
