package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/opencctv/mediamtx-sync/common/config"
	"github.com/opencctv/mediamtx-sync/common/models"
	"go.uber.org/zap"
)

const DefaultTimeout = 10 * time.Second

type ErrorKind string

const (
	//ErrUnreachable covers transport failures: connection refused, DNS, timeout
	ErrUnreachable ErrorKind = "unreachable"
	//ErrRequestFailed covers HTTP error statuses and malformed payloads
	ErrRequestFailed ErrorKind = "request_failed"
	//ErrApplication means the directory service itself reported a failure
	ErrApplication ErrorKind = "application_error"
)

type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnreachable:
		return fmt.Sprintf("directory service unreachable: %v", e.Err)
	case ErrRequestFailed:
		if e.Message != "" {
			return fmt.Sprintf("directory request failed with status %d: %s", e.Status, e.Message)
		}
		return fmt.Sprintf("directory request failed with status %d", e.Status)
	default:
		return fmt.Sprintf("directory service reported an error: %s", e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

//KindOf extracts the failure classification from a client error.
func KindOf(err error) ErrorKind {
	var dirErr *Error
	if errors.As(err, &dirErr) {
		return dirErr.Kind
	}
	return ""
}

type (
	//Client fetches camera records from the directory service. An empty
	//camera list is a valid result, not an error.
	Client interface {
		FetchActiveCameras(ctx context.Context) ([]models.Camera, error)
	}

	//Authenticator establishes a directory session before the first fetch.
	Authenticator interface {
		RequiresAuth() bool
		Authenticate(ctx context.Context) error
	}
)

type camerasResponse struct {
	Success bool            `json:"success"`
	Cameras []models.Camera `json:"cameras"`
	Count   int             `json:"count"`
	Error   string          `json:"error"`
}

type sessionResponse struct {
	Result struct {
		UID int `json:"uid"`
	} `json:"result"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type HTTPClient struct {
	HTTP   *resty.Client
	Config config.Directory
	Logger *zap.Logger
}

func NewHTTPClient(conf config.Directory, logger *zap.Logger) *HTTPClient {
	if v := os.Getenv("DIRECTORY_URL"); v != "" {
		conf.BaseURL = v
	}
	if v := os.Getenv("DIRECTORY_DB"); v != "" {
		conf.Database = v
	}
	if v := os.Getenv("DIRECTORY_USER"); v != "" {
		conf.Username = v
	}
	if v := os.Getenv("DIRECTORY_PASSWORD"); v != "" {
		conf.Password = v
	}
	timeout := DefaultTimeout
	if conf.TimeoutSeconds > 0 {
		timeout = time.Duration(conf.TimeoutSeconds) * time.Second
	}
	r := resty.New()
	r.SetBaseURL(conf.BaseURL)
	r.SetTimeout(timeout)
	r.SetHeader("Accept", "application/json")
	return &HTTPClient{
		HTTP:   r,
		Config: conf,
		Logger: logger,
	}
}

//RequiresAuth reports whether directory credentials are configured. The
//cameras endpoint itself is public; session auth is only attempted when the
//deployment locks it down.
func (c *HTTPClient) RequiresAuth() bool {
	return c.Config.Username != ""
}

//Authenticate opens a session with the directory service. The session cookie
//is retained on the underlying client for subsequent fetches.
func (c *HTTPClient) Authenticate(ctx context.Context) error {
	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"params": map[string]interface{}{
			"db":       c.Config.Database,
			"login":    c.Config.Username,
			"password": c.Config.Password,
		},
	}
	var result sessionResponse
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&result).
		Post("/web/session/authenticate")
	if err != nil {
		return &Error{Kind: ErrUnreachable, Err: err}
	}
	if resp.IsError() {
		return &Error{Kind: ErrRequestFailed, Status: resp.StatusCode()}
	}
	if result.Error != nil {
		return &Error{Kind: ErrApplication, Message: result.Error.Message}
	}
	if result.Result.UID == 0 {
		return &Error{Kind: ErrApplication, Message: "authentication rejected, check credentials"}
	}
	c.Logger.Info(fmt.Sprintf("authenticated with directory service as user %d", result.Result.UID))
	return nil
}

//FetchActiveCameras retrieves the active camera records. All failure paths
//map onto the Error taxonomy; partial data never raises.
func (c *HTTPClient) FetchActiveCameras(ctx context.Context) ([]models.Camera, error) {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		Get("/api/cctv/cameras")
	if err != nil {
		return nil, &Error{Kind: ErrUnreachable, Err: err}
	}
	if resp.IsError() {
		return nil, &Error{Kind: ErrRequestFailed, Status: resp.StatusCode()}
	}
	var result camerasResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &Error{Kind: ErrRequestFailed, Status: resp.StatusCode(), Message: "malformed response body"}
	}
	if !result.Success {
		return nil, &Error{Kind: ErrApplication, Message: result.Error}
	}
	cameras := result.Cameras
	for i := range cameras {
		//older directory releases omit the computed path, derive it the
		//same way the directory does
		if cameras[i].MediaMTXPath == "" && cameras[i].Name != "" {
			cameras[i].MediaMTXPath = models.SlugFromName(cameras[i].Name)
			c.Logger.Info(fmt.Sprintf("camera %d carries no mediamtx path, derived %q from its name", cameras[i].ID, cameras[i].MediaMTXPath))
		}
	}
	c.Logger.Info(fmt.Sprintf("retrieved %d cameras from directory service", len(cameras)))
	return cameras, nil
}
