package api

import (
	"context"

	"budgetplanner/internal/config"
	"budgetplanner/internal/models"
)

func (b *HTTPBackend) ListUsers(ctx context.Context) ([]models.User, error) {
	var resp []UserDTO
	if err := b.doer.Get(ctx, b.endpoints.UsersAll, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, UserToModel), nil
}

func (b *HTTPBackend) GetUser(ctx context.Context, id int64) (models.User, error) {
	var resp UserDTO
	if err := b.doer.Get(ctx, config.Path(b.endpoints.UserByID, byID(id)), &resp); err != nil {
		return models.User{}, err
	}
	return UserToModel(resp), nil
}

func (b *HTTPBackend) CreateUser(ctx context.Context, reg models.Registration) (models.User, error) {
	body := UserWriteDTO{
		Name:     reg.Name,
		Surname:  reg.Surname,
		Login:    reg.Login,
		Password: reg.Password,
		Age:      reg.Age,
	}
	var resp UserDTO
	if err := b.doer.Post(ctx, b.endpoints.UserCreate, body, &resp); err != nil {
		return models.User{}, err
	}
	return UserToModel(resp), nil
}

func (b *HTTPBackend) UpdateUser(ctx context.Context, id int64, upd models.ProfileUpdate) (models.User, error) {
	body := UserWriteDTO{
		ID:       id,
		Name:     upd.Name,
		Surname:  upd.Surname,
		Login:    upd.Login,
		Password: upd.Password,
		Age:      upd.Age,
	}
	var resp UserDTO
	if err := b.doer.Put(ctx, b.endpoints.UserUpdate, body, &resp); err != nil {
		return models.User{}, err
	}
	return UserToModel(resp), nil
}

func (b *HTTPBackend) DeleteUser(ctx context.Context, id int64) error {
	return b.doer.Delete(ctx, config.Path(b.endpoints.UserDelete, byID(id)))
}
