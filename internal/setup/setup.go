package setup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/tapnserve/pos/internal/api"
)

// AdminSetupData is the first-run admin account payload.
type AdminSetupData struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	RestaurantName string `json:"restaurantName"`
}

// Validate checks the setup payload before it is sent.
func (d AdminSetupData) Validate() error {
	if strings.TrimSpace(d.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if d.Password == "" {
		return fmt.Errorf("password is required")
	}
	if strings.TrimSpace(d.RestaurantName) == "" {
		return fmt.Errorf("restaurant name is required")
	}
	return nil
}

// Profile is the restaurant's stored account info.
type Profile struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	RestaurantName string `json:"restaurantName"`
}

type setupCheckResponse struct {
	InitialSetupNeeded bool `json:"initialSetupNeeded"`
}

// DataAccess centralizes first-run setup and restaurant profile calls.
type DataAccess struct {
	client *api.Client
}

func NewDataAccess(client *api.Client) *DataAccess {
	return &DataAccess{client: client}
}

// CheckInitialSetup reports whether the backend still needs its first admin
// account.
func (da *DataAccess) CheckInitialSetup(ctx context.Context) (bool, error) {
	if da == nil || da.client == nil {
		return false, fmt.Errorf("setup client not configured")
	}

	var body setupCheckResponse
	if err := da.client.GetJSON(ctx, "/api/setup/check", &body); err != nil {
		return false, err
	}
	return body.InitialSetupNeeded, nil
}

// CreateAdminAccount performs the first-run setup: a multipart upload with
// the adminData JSON blob and an optional PNG logo.
func (da *DataAccess) CreateAdminAccount(ctx context.Context, data AdminSetupData, logo []byte) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("setup client not configured")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode admin data: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("adminData", string(raw)); err != nil {
		return fmt.Errorf("write adminData part: %w", err)
	}

	if len(logo) > 0 {
		part, err := writer.CreateFormFile("logo", "logo.png")
		if err != nil {
			return fmt.Errorf("create logo part: %w", err)
		}
		if _, err := part.Write(logo); err != nil {
			return fmt.Errorf("write logo part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	resp, err := da.client.DoRaw(ctx, http.MethodPost, "/api/setup", writer.FormDataContentType(), buf.Bytes())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &api.StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}

// Profile fetches the restaurant account info.
func (da *DataAccess) Profile(ctx context.Context) (*Profile, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("setup client not configured")
	}

	var profile Profile
	if err := da.client.GetJSON(ctx, "/api/restaurant", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logo fetches the restaurant logo as raw bytes.
func (da *DataAccess) Logo(ctx context.Context) ([]byte, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("setup client not configured")
	}

	resp, err := da.client.Do(ctx, http.MethodGet, "/api/restaurant/logo", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &api.StatusError{Status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
