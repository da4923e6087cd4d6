package sheetsclient

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/utils"
)

// Client wraps the Google Sheets API client
type Client struct {
	service *sheets.Service
}

// NewClient creates a Sheets client, running the OAuth flow if no usable token
// is cached for env
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, env string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{service: service}, nil
}

// findSheet returns the tab with the given title, or nil
func (c *Client) findSheet(spreadsheetID, title string) (*sheets.Sheet, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == title {
			return sheet, nil
		}
	}
	return nil, nil
}

// createSheet adds a tab to the spreadsheet
func (c *Client) createSheet(spreadsheetID, title string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}

	if _, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, req).Do(); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", title, err)
	}
	return nil
}

// writeValues clears a tab and writes rows from A1
func (c *Client) writeValues(spreadsheetID, title string, rows [][]interface{}) error {
	// titles contain spaces so must be quoted in A1 notation
	tab := "'" + title + "'"

	if _, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, tab, &sheets.ClearValuesRequest{}).Do(); err != nil {
		return fmt.Errorf("failed to clear sheet %q: %w", title, err)
	}

	_, err := c.service.Spreadsheets.Values.Update(
		spreadsheetID,
		tab+"!A1",
		&sheets.ValueRange{Values: rows},
	).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write sheet %q: %w", title, err)
	}
	return nil
}
