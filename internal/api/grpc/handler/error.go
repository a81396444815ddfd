package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/shopfront/internal/model"
)

func handleError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, model.ErrDuplicateEmail):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrNotLoggedIn):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, model.ErrAlreadyLoggedIn):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrFetch):
		return status.Error(codes.Unavailable, "catalog unavailable")
	case errors.Is(err, model.ErrInvalidSortKey),
		errors.Is(err, errInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
