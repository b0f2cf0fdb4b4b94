package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

const DefaultBaseURL = "https://api.airtable.com/v0"

type Client struct {
	token      string
	baseURL    string
	baseID     string
	table      string
	httpClient *http.Client
	log        logrus.FieldLogger
}

func NewClient(baseURL, token, baseID, table string, log logrus.FieldLogger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		baseID:     baseID,
		table:      table,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// MirrorLead grava uma cópia do lead na tabela do Airtable.
func (c *Client) MirrorLead(ctx context.Context, lead *entity.Lead) error {
	rec, err := c.CreateRecord(ctx, LeadFields(lead))
	if err != nil {
		return fmt.Errorf("airtable: lead %s: %w", lead.ID, err)
	}
	c.log.WithFields(logrus.Fields{"lead_id": lead.ID, "record_id": rec.ID}).Info("lead espelhado no Airtable")
	return nil
}

func (c *Client) CreateRecord(ctx context.Context, fields map[string]any) (*Record, error) {
	if c.token == "" || c.baseID == "" {
		return nil, fmt.Errorf("airtable não configurado")
	}

	payload, err := json.Marshal(Record{Fields: fields})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(c.table))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("erro ao criar registro: %d - %s", resp.StatusCode, string(body))
	}

	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
