// Package sheets stores rooms and bookings as rows of a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	backendName = "sheets"

	// значения пишутся как есть, без интерпретации формул и дат
	valueInputRaw   = "RAW"
	insertRowsParam = "INSERT_ROWS"
)

// valuesAPI минимальный набор операций над диапазонами значений
type valuesAPI interface {
	Get(ctx context.Context, rng string) ([][]interface{}, error)
	Append(ctx context.Context, rng string, rows [][]interface{}) error
	Update(ctx context.Context, rng string, rows [][]interface{}) error
}

// Credentials учётные данные сервисного аккаунта
type Credentials struct {
	SpreadsheetID       string
	ServiceAccountEmail string
	PrivateKey          string
}

// Client обёртка над Sheets API с метриками и таймаутом на запрос
type Client struct {
	values  valuesAPI
	metrics MetricsCollector
	timeout time.Duration
}

// NewClient создаёт клиента Sheets API, авторизованного через JWT сервисного аккаунта
func NewClient(ctx context.Context, creds Credentials, timeout time.Duration, m MetricsCollector) (*Client, error) {
	if creds.SpreadsheetID == "" || creds.ServiceAccountEmail == "" || creds.PrivateKey == "" {
		return nil, ErrAuth
	}

	conf := &jwt.Config{
		Email:      creds.ServiceAccountEmail,
		PrivateKey: []byte(creds.PrivateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%w: create service: %v", ErrAuth, err)
	}

	return newClient(&serviceValues{svc: svc, spreadsheetID: creds.SpreadsheetID}, timeout, m), nil
}

func newClient(values valuesAPI, timeout time.Duration, m MetricsCollector) *Client {
	return &Client{values: values, metrics: m, timeout: timeout}
}

func (c *Client) get(ctx context.Context, operation, rng string) ([][]interface{}, error) {
	var rows [][]interface{}
	err := c.call(ctx, operation, func(ctx context.Context) error {
		var err error
		rows, err = c.values.Get(ctx, rng)
		return err
	})
	return rows, err
}

func (c *Client) append(ctx context.Context, operation, rng string, rows [][]interface{}) error {
	return c.call(ctx, operation, func(ctx context.Context) error {
		return c.values.Append(ctx, rng, rows)
	})
}

func (c *Client) update(ctx context.Context, operation, rng string, rows [][]interface{}) error {
	return c.call(ctx, operation, func(ctx context.Context) error {
		return c.values.Update(ctx, rng, rows)
	})
}

func (c *Client) call(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	if c.metrics != nil {
		c.metrics.ObserveStoreCall(backendName, operation, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRequest, operation, err)
	}
	return nil
}

// serviceValues реализация valuesAPI поверх официального клиента
type serviceValues struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

func (s *serviceValues) Get(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (s *serviceValues) Append(ctx context.Context, rng string, rows [][]interface{}) error {
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertRowsParam).
		Context(ctx).
		Do()
	return err
}

func (s *serviceValues) Update(ctx context.Context, rng string, rows [][]interface{}) error {
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	return err
}
