package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"auto_checkin_doc_generator/checkin"
)

const apiBase = "https://api.notion.com/v1"

// Database property names and fixed tag values. These are part of the external
// contract with the check-in database and must not be localized.
const (
	titleProperty    = "제목"
	dateProperty     = "날짜"
	quarterProperty  = "Quarter"
	hostProperty     = "주최자"
	attendeeProperty = "참석자"
	scribeProperty   = "작성자"
	tagProperty      = "태그"
	typeProperty     = "회의 유형"

	meetingType = "Check-in"
	pageIcon    = "🎪"
)

// Block is a Notion block object attached to a created page as children.
type Block map[string]any

// UnknownUserError means a configured person name has no matching workspace
// user, so the page's people properties cannot be filled.
type UnknownUserError struct {
	Name string
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("notion workspace has no user named %q", e.Name)
}

// Client talks to the Notion API for a single check-in database.
type Client struct {
	token      string
	version    string
	databaseID string
	baseURL    string
	client     *http.Client
	verbose    bool
	logger     *log.Logger
}

// New creates a Client. A nil http.Client gets a 60s timeout default.
func New(token, version, databaseID string, client *http.Client, verbose bool, logger *log.Logger) (*Client, error) {
	if token == "" || version == "" || databaseID == "" {
		return nil, errors.New("notion client requires token, version, and database id")
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		token:      token,
		version:    version,
		databaseID: databaseID,
		baseURL:    apiBase,
		client:     client,
		verbose:    verbose,
		logger:     logger,
	}, nil
}

func (c *Client) infof(format string, args ...interface{}) {
	if !c.verbose {
		return
	}
	c.logger.Printf("[INFO] "+format, args...)
}

// QueryLatest returns the newest check-in page tagged with the team, or nil
// when the database has none.
func (c *Client) QueryLatest(ctx context.Context, teamName string) (*checkin.LatestRecord, error) {
	payload, err := json.Marshal(map[string]any{
		"filter": map[string]any{
			"and": []any{
				map[string]any{"property": tagProperty, "multi_select": map[string]any{"contains": teamName}},
				map[string]any{"property": tagProperty, "multi_select": map[string]any{"contains": checkin.CategoryTag}},
				map[string]any{"property": typeProperty, "multi_select": map[string]any{"contains": meetingType}},
			},
		},
		"sorts":     []any{map[string]any{"timestamp": "created_time", "direction": "descending"}},
		"page_size": 1,
	})
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/databases/%s/query", c.baseURL, c.databaseID), payload)
	if err != nil {
		return nil, err
	}

	results := gjson.GetBytes(data, "results").Array()
	if len(results) == 0 {
		c.infof("no prior check-in page for team %s", teamName)
		return nil, nil
	}
	page := results[0]

	createdAt, err := time.Parse(time.RFC3339, page.Get("created_time").String())
	if err != nil {
		return nil, fmt.Errorf("parse created_time of latest page: %w", err)
	}
	record := &checkin.LatestRecord{
		CreatedAt:   createdAt,
		Title:       page.Get("properties." + titleProperty + ".title.0.plain_text").String(),
		PeriodLabel: page.Get("properties." + quarterProperty + ".select.name").String(),
		URL:         page.Get("url").String(),
	}
	c.infof("latest check-in for team %s: %q created %s", teamName, record.Title, record.CreatedAt.Format(time.RFC3339))
	return record, nil
}

// CreatePage creates the next check-in page. userIDs maps workspace user names
// to Notion user IDs (see ListUsers); children is an optional agenda body.
// Returns the created page URL.
func (c *Client) CreatePage(ctx context.Context, req *checkin.NewRecordRequest, userIDs map[string]string, children []Block) (string, error) {
	hostID, ok := userIDs[req.Host]
	if !ok {
		return "", &UnknownUserError{Name: req.Host}
	}
	scribeID, ok := userIDs[req.Scribe]
	if !ok {
		return "", &UnknownUserError{Name: req.Scribe}
	}
	attendees := make([]any, 0, len(req.Attendees))
	for _, name := range req.Attendees {
		id, ok := userIDs[name]
		if !ok {
			return "", &UnknownUserError{Name: name}
		}
		attendees = append(attendees, person(id))
	}

	tags := make([]any, 0, len(req.Tags))
	for _, tag := range req.Tags {
		tags = append(tags, map[string]any{"name": tag})
	}

	payload, err := json.Marshal(map[string]any{
		"parent": map[string]any{"database_id": c.databaseID},
		"properties": map[string]any{
			titleProperty: map[string]any{"title": []any{
				map[string]any{"type": "text", "text": map[string]any{"content": req.Title}},
			}},
			dateProperty:     map[string]any{"date": map[string]any{"start": req.ScheduledDate.Format("2006-01-02")}},
			quarterProperty:  map[string]any{"select": map[string]any{"name": req.PeriodLabel}},
			hostProperty:     map[string]any{"people": []any{person(hostID)}},
			attendeeProperty: map[string]any{"people": attendees},
			scribeProperty:   map[string]any{"people": []any{person(scribeID)}},
			tagProperty:      map[string]any{"multi_select": tags},
			typeProperty:     map[string]any{"multi_select": []any{map[string]any{"name": meetingType}}},
		},
	})
	if err != nil {
		return "", err
	}
	payload, err = sjson.SetBytes(payload, "icon", map[string]any{"type": "emoji", "emoji": pageIcon})
	if err != nil {
		return "", err
	}
	if len(children) > 0 {
		payload, err = sjson.SetBytes(payload, "children", children)
		if err != nil {
			return "", err
		}
	}

	data, err := c.do(ctx, http.MethodPost, c.baseURL+"/pages", payload)
	if err != nil {
		return "", err
	}
	pageURL := gjson.GetBytes(data, "url").String()
	if pageURL == "" {
		return "", fmt.Errorf("create page: response has no url: %s", strings.TrimSpace(string(data)))
	}
	c.infof("created page %q -> %s", req.Title, pageURL)
	return pageURL, nil
}

// ListUsers maps every workspace user name to its ID, following pagination.
func (c *Client) ListUsers(ctx context.Context) (map[string]string, error) {
	users := make(map[string]string)
	cursor := ""
	for {
		endpoint := c.baseURL + "/users?page_size=100"
		if cursor != "" {
			endpoint += "&start_cursor=" + url.QueryEscape(cursor)
		}
		data, err := c.do(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		for _, r := range gjson.GetBytes(data, "results").Array() {
			name := r.Get("name").String()
			if name == "" {
				continue
			}
			users[name] = r.Get("id").String()
		}
		if !gjson.GetBytes(data, "has_more").Bool() {
			break
		}
		cursor = gjson.GetBytes(data, "next_cursor").String()
		if cursor == "" {
			break
		}
	}
	c.infof("workspace has %d named users", len(users))
	return users, nil
}

func person(id string) map[string]any {
	return map[string]any{"object": "user", "id": id}
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("notion: %s %s: %s: %s", method, endpoint, resp.Status, strings.TrimSpace(string(data)))
	}
	return data, nil
}
