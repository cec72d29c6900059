package api

import (
	"context"

	"budgetplanner/internal/models"
)

// Login posts credentials in the backend's {Login, Password} shape.
func (b *HTTPBackend) Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error) {
	var resp LoginResponseDTO
	body := LoginRequestDTO{Login: creds.Login, Password: creds.Password}
	if err := b.doer.Post(ctx, b.endpoints.Login, body, &resp); err != nil {
		return models.LoginResult{}, err
	}
	return LoginToModel(resp), nil
}
