package doc4all

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/AnsarMahir/doc4all-dashboard/internal/config"
	"github.com/AnsarMahir/doc4all-dashboard/internal/domain/models"
)

// Client exposes the platform API operations used by the dashboard
// service. Every call carries the caller's bearer token; this service
// never holds credentials of its own.
type Client interface {
	ListDoctorBookings(ctx context.Context, token string) ([]models.Booking, error)
	ListDoctorInvitations(ctx context.Context, token string) ([]models.Invitation, error)
	DoctorProfileStatus(ctx context.Context, token string) (models.ProfileStatus, error)
	CompleteDoctorProfile(ctx context.Context, token string, payload models.DoctorProfilePayload) error

	ListDispensaryBookings(ctx context.Context, token string) ([]models.Booking, error)
	ListDispensaryInvitations(ctx context.Context, token string) ([]models.Invitation, error)
	GetDispensaryProfile(ctx context.Context, token string) (models.DispensaryProfile, error)
	DispensaryProfileStatus(ctx context.Context, token, email string) (models.ProfileStatus, error)
	CompleteDispensaryProfile(ctx context.Context, token string, payload models.DispensaryProfileSubmission) error

	ListPatientBookings(ctx context.Context, token string) ([]models.Booking, error)
	ListDispensaries(ctx context.Context, token string) ([]models.Dispensary, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a platform API client using the provided configuration.
func NewClient(cfg config.UpstreamConfig) *APIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient}
}

// apiError represents a platform API error payload.
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ListDoctorBookings fetches all bookings of the authenticated doctor.
func (c *APIClient) ListDoctorBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.get(ctx, token, "/doctor/bookings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDoctorInvitations fetches invitations received by the doctor.
func (c *APIClient) ListDoctorInvitations(ctx context.Context, token string) ([]models.Invitation, error) {
	var out []models.Invitation
	if err := c.get(ctx, token, "/doctor/invitations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DoctorProfileStatus checks whether the doctor finished their profile.
func (c *APIClient) DoctorProfileStatus(ctx context.Context, token string) (models.ProfileStatus, error) {
	var out models.ProfileStatus
	if err := c.post(ctx, token, "/doctor/profile-status", struct{}{}, &out); err != nil {
		return models.ProfileStatus{}, err
	}
	return out, nil
}

// CompleteDoctorProfile submits the doctor's profile-completion payload.
func (c *APIClient) CompleteDoctorProfile(ctx context.Context, token string, payload models.DoctorProfilePayload) error {
	return c.post(ctx, token, "/doctor/complete-profile", payload, nil)
}

// ListDispensaryBookings fetches all bookings at the dispensary.
func (c *APIClient) ListDispensaryBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.get(ctx, token, "/dispensary/bookings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDispensaryInvitations fetches invitations sent by the dispensary.
func (c *APIClient) ListDispensaryInvitations(ctx context.Context, token string) ([]models.Invitation, error) {
	var out []models.Invitation
	if err := c.get(ctx, token, "/dispensary/invitations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDispensaryProfile fetches the dispensary's own profile record.
func (c *APIClient) GetDispensaryProfile(ctx context.Context, token string) (models.DispensaryProfile, error) {
	var out models.DispensaryProfile
	if err := c.get(ctx, token, "/dispensary/profile", &out); err != nil {
		return models.DispensaryProfile{}, err
	}
	return out, nil
}

// DispensaryProfileStatus checks the dispensary's profile completion. The
// upstream endpoint keys this check on the account email.
func (c *APIClient) DispensaryProfileStatus(ctx context.Context, token, email string) (models.ProfileStatus, error) {
	var out models.ProfileStatus
	body := map[string]string{"email": email}
	if err := c.post(ctx, token, "/dispensary/profile-status", body, &out); err != nil {
		return models.ProfileStatus{}, err
	}
	return out, nil
}

// CompleteDispensaryProfile submits the dispensary profile payload.
func (c *APIClient) CompleteDispensaryProfile(ctx context.Context, token string, payload models.DispensaryProfileSubmission) error {
	return c.post(ctx, token, "/dispensary/complete-profile", payload, nil)
}

// ListPatientBookings fetches all bookings of the authenticated patient.
func (c *APIClient) ListPatientBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.get(ctx, token, "/patient/bookings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDispensaries fetches the public dispensary directory.
func (c *APIClient) ListDispensaries(ctx context.Context, token string) ([]models.Dispensary, error) {
	var out []models.Dispensary
	if err := c.get(ctx, token, "/dispensaries", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) get(ctx context.Context, token, path string, result any) error {
	apiErr := new(apiError)

	req := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetError(apiErr)
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}

	return checkStatus(resp, path, apiErr)
}

func (c *APIClient) post(ctx context.Context, token, path string, body, result any) error {
	apiErr := new(apiError)

	req := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(body).
		SetError(apiErr)
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}

	return checkStatus(resp, path, apiErr)
}

func checkStatus(resp *resty.Response, path string, apiErr *apiError) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	message := strings.TrimSpace(apiErr.Message)
	if message == "" {
		message = strings.TrimSpace(string(resp.Body()))
	}
	code := resp.StatusCode()
	if apiErr.Code != 0 {
		code = apiErr.Code
	}

	return fmt.Errorf("doc4all api error on %s: code=%d, message=%s", path, code, message)
}
