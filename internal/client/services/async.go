package services

import (
	"context"

	"github.com/dmitrijs2005/epicquest/internal/client/models"
)

// AsyncUserService runs every UserService operation on one background
// worker so that operations never interleave.
type AsyncUserService struct {
	users  UserService
	worker *Worker
}

func NewAsyncUserService(users UserService, worker *Worker) *AsyncUserService {
	return &AsyncUserService{users: users, worker: worker}
}

func (a *AsyncUserService) Register(ctx context.Context, username, password, email string) *Future[*models.User] {
	return Submit(a.worker, func() (*models.User, error) {
		return a.users.Register(ctx, username, password, email)
	})
}

func (a *AsyncUserService) Login(ctx context.Context, username, password string) *Future[*models.User] {
	return Submit(a.worker, func() (*models.User, error) {
		return a.users.Login(ctx, username, password)
	})
}

func (a *AsyncUserService) Logout(ctx context.Context) *Future[struct{}] {
	return Submit(a.worker, func() (struct{}, error) {
		return struct{}{}, a.users.Logout(ctx)
	})
}

func (a *AsyncUserService) CurrentUser(ctx context.Context) *Future[*models.User] {
	return Submit(a.worker, func() (*models.User, error) {
		return a.users.CurrentUser(ctx), nil
	})
}

func (a *AsyncUserService) UpdateUser(ctx context.Context, u *models.User) *Future[struct{}] {
	// copy now so later caller mutations cannot race the worker
	c := u.Clone()
	return Submit(a.worker, func() (struct{}, error) {
		return struct{}{}, a.users.UpdateUser(ctx, c)
	})
}

func (a *AsyncUserService) IsUsernameTaken(ctx context.Context, username string) *Future[bool] {
	return Submit(a.worker, func() (bool, error) {
		return a.users.IsUsernameTaken(ctx, username), nil
	})
}

func (a *AsyncUserService) IsLoggedIn(ctx context.Context) *Future[bool] {
	return Submit(a.worker, func() (bool, error) {
		return a.users.IsLoggedIn(ctx), nil
	})
}

func (a *AsyncUserService) ResetDailyOpportunities(ctx context.Context) *Future[*models.User] {
	return Submit(a.worker, func() (*models.User, error) {
		return a.users.ResetDailyOpportunities(ctx)
	})
}

// Do runs an arbitrary function against the underlying service on the
// worker, for compound operations that must not interleave with others.
func Do[T any](a *AsyncUserService, fn func(users UserService) (T, error)) *Future[T] {
	return Submit(a.worker, func() (T, error) {
		return fn(a.users)
	})
}
