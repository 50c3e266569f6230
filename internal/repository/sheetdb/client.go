package sheetdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/config"
)

// Client talks to the Apps Script web endpoint that fronts the spreadsheet.
// Reads are query-parameterized GETs, writes are form-encoded POSTs with an
// action discriminator.
type Client struct {
	httpClient *resty.Client
	endpoint   string
	logger     *zap.Logger
}

// NewClient builds the Apps Script store client from configuration.
func NewClient(cfg config.SheetAPIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetTimeout(30 * time.Second).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &Client{
		httpClient: restyClient,
		endpoint:   cfg.Endpoint,
		logger:     logger,
	}
}

// envelope mirrors the JSON body the endpoint returns for every operation.
type envelope struct {
	Success bool    `json:"success"`
	Data    [][]any `json:"data"`
	FileURL string  `json:"fileUrl"`
	Error   string  `json:"error"`
}

// FetchSheet issues a cache-busted read of the named sheet.
func (c *Client) FetchSheet(ctx context.Context, sheet string, opts ...FetchOption) ([][]any, error) {
	options := fetchOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	params := map[string]string{
		"sheet": sheet,
		"ts":    strconv.FormatInt(time.Now().UnixNano(), 10),
	}
	if options.getDataAction {
		params["action"] = "getData"
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch sheet %s: %v", ErrTransport, sheet, err)
	}

	env, err := c.decode(resp, "fetch sheet "+sheet)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("sheet fetched", zap.String("sheet", sheet), zap.Int("rows", len(env.Data)))
	return env.Data, nil
}

// Insert appends a row via action=insert.
func (c *Client) Insert(ctx context.Context, sheet string, row []string) error {
	rowData, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("%w: encode row for %s: %v", ErrFormat, sheet, err)
	}

	_, err = c.submit(ctx, map[string]string{
		"action":    "insert",
		"sheetName": sheet,
		"rowData":   string(rowData),
	})
	return err
}

// Update overwrites the row at rowIndex via action=update.
func (c *Client) Update(ctx context.Context, sheet string, rowIndex int, row []string) error {
	rowData, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("%w: encode row for %s: %v", ErrFormat, sheet, err)
	}

	_, err = c.submit(ctx, map[string]string{
		"action":    "update",
		"sheetName": sheet,
		"rowIndex":  strconv.Itoa(rowIndex),
		"rowData":   string(rowData),
	})
	return err
}

// Delete removes the row at rowIndex via action=delete.
func (c *Client) Delete(ctx context.Context, sheet string, rowIndex int) error {
	_, err := c.submit(ctx, map[string]string{
		"action":    "delete",
		"sheetName": sheet,
		"rowIndex":  strconv.Itoa(rowIndex),
	})
	return err
}

// UploadFile stores a base64 payload in the configured Drive folder and
// returns the hosted file URL.
func (c *Client) UploadFile(ctx context.Context, req UploadRequest) (string, error) {
	env, err := c.submit(ctx, map[string]string{
		"action":     "uploadFile",
		"base64Data": req.Base64Data,
		"fileName":   req.FileName,
		"mimeType":   req.MimeType,
		"folderId":   req.FolderID,
	})
	if err != nil {
		return "", err
	}
	if env.FileURL == "" {
		return "", fmt.Errorf("%w: upload succeeded without a file url", ErrFormat)
	}
	return env.FileURL, nil
}

func (c *Client) submit(ctx context.Context, form map[string]string) (*envelope, error) {
	action := form["action"]

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(form).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: submit %s: %v", ErrTransport, action, err)
	}

	env, err := c.decode(resp, "submit "+action)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("submit accepted", zap.String("action", action), zap.String("sheet", form["sheetName"]))
	return env, nil
}

func (c *Client) decode(resp *resty.Response, op string) (*envelope, error) {
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s: status %d", ErrTransport, op, resp.StatusCode())
	}

	env := new(envelope)
	if err := json.Unmarshal(resp.Body(), env); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, op, err)
	}

	if !env.Success {
		message := env.Error
		if message == "" {
			message = "no message"
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrApplication, op, message)
	}

	return env, nil
}
