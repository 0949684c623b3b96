package cli

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

// AccountClient calls the account API of a running server.
type AccountClient struct {
	httpClient *resty.Client
	adminToken string
}

func NewAccountClient(baseURL, adminToken string) *AccountClient {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(30 * time.Second)

	return &AccountClient{
		httpClient: client,
		adminToken: adminToken,
	}
}

func (client *AccountClient) Close() error {
	return client.httpClient.Close()
}

type AccountUser struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    AccountUser `json:"user"`
}

type UserStats struct {
	Total    int `json:"total"`
	Online   int `json:"online"`
	NewToday int `json:"newToday"`
}

type AdminUsersResponse struct {
	Users []AccountUser `json:"users"`
	Stats UserStats     `json:"stats"`
}

type apiError struct {
	Error string `json:"error"`
}

func (client *AccountClient) Register(ctx context.Context, username, email, password string) (RegisterResponse, error) {
	var result RegisterResponse
	err := client.post(ctx, "/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &result)
	return result, err
}

func (client *AccountClient) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var result LoginResponse
	err := client.post(ctx, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	return result, err
}

func (client *AccountClient) Me(ctx context.Context, token string) (AccountUser, error) {
	var result struct {
		User AccountUser `json:"user"`
	}
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetResult(&result).
		SetError(&apiError{}).
		Get("/api/me")
	if err != nil {
		return AccountUser{}, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return AccountUser{}, responseError(response)
	}
	return result.User, nil
}

func (client *AccountClient) AdminUsers(ctx context.Context) (AdminUsersResponse, error) {
	var result AdminUsersResponse
	request := client.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiError{})
	if client.adminToken != "" {
		request.SetHeader("X-Admin-Token", client.adminToken)
	}
	response, err := request.Get("/api/admin/users")
	if err != nil {
		return AdminUsersResponse{}, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return AdminUsersResponse{}, responseError(response)
	}
	return result, nil
}

func (client *AccountClient) post(ctx context.Context, path string, body any, result any) error {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(&apiError{}).
		Post(path)
	if err != nil {
		return fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return responseError(response)
	}
	return nil
}

func responseError(response *resty.Response) error {
	if body, ok := response.Error().(*apiError); ok && body.Error != "" {
		return fmt.Errorf("response error %d: %s", response.StatusCode(), body.Error)
	}
	return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
}
