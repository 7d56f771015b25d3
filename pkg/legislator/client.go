package legislator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Profile is the subset of ProPublica member data shown on the lookup page.
type Profile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Party      string   `json:"party"`
	State      string   `json:"state"`
	District   string   `json:"district,omitempty"`
	Chamber    string   `json:"chamber"`
	Committees []string `json:"committees"`
	LastVotes  []Vote   `json:"last_votes"`
}

type Vote struct {
	Bill        string `json:"bill"`
	Description string `json:"description"`
	Position    string `json:"position"`
	Date        string `json:"date"`
}

// Client calls the ProPublica Congress API.
type Client struct {
	APIKey   string
	BaseURL  string
	Congress int
	HTTP     *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:   apiKey,
		BaseURL:  "https://api.propublica.org/congress/v1",
		Congress: 118,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// LookupByName searches both chambers for a case-insensitive name match.
// Any failure (missing key, network, no match) returns nil with no error;
// the lookup page renders the not-found message either way.
func (c *Client) LookupByName(ctx context.Context, name string) *Profile {
	if c.APIKey == "" || strings.TrimSpace(name) == "" {
		return nil
	}

	needle := strings.ToLower(strings.TrimSpace(name))

	for _, chamber := range []string{"house", "senate"} {
		members, err := c.fetchMembers(ctx, chamber)
		if err != nil {
			continue
		}
		for _, m := range members {
			full := strings.ToLower(m.FirstName + " " + m.LastName)
			if !strings.Contains(full, needle) && !strings.Contains(strings.ToLower(m.LastName), needle) {
				continue
			}
			profile := &Profile{
				ID:       m.ID,
				Name:     m.FirstName + " " + m.LastName,
				Party:    m.Party,
				State:    m.State,
				District: m.District,
				Chamber:  chamber,
			}
			profile.Committees = c.fetchCommittees(ctx, m.ID)
			profile.LastVotes = c.fetchRecentVotes(ctx, m.ID)
			return profile
		}
	}
	return nil
}

type memberRow struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Party     string `json:"party"`
	State     string `json:"state"`
	District  string `json:"district"`
}

func (c *Client) fetchMembers(ctx context.Context, chamber string) ([]memberRow, error) {
	url := fmt.Sprintf("%s/%d/%s/members.json", c.BaseURL, c.Congress, chamber)

	var payload struct {
		Results []struct {
			Members []memberRow `json:"members"`
		} `json:"results"`
	}
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("no results for chamber %s", chamber)
	}
	return payload.Results[0].Members, nil
}

func (c *Client) fetchCommittees(ctx context.Context, memberID string) []string {
	url := fmt.Sprintf("%s/members/%s.json", c.BaseURL, memberID)

	var payload struct {
		Results []struct {
			Roles []struct {
				Congress   string `json:"congress"`
				Committees []struct {
					Name string `json:"name"`
				} `json:"committees"`
			} `json:"roles"`
		} `json:"results"`
	}
	if err := c.get(ctx, url, &payload); err != nil {
		return nil
	}
	if len(payload.Results) == 0 || len(payload.Results[0].Roles) == 0 {
		return nil
	}

	// The first role is the current congress.
	var names []string
	for _, committee := range payload.Results[0].Roles[0].Committees {
		names = append(names, committee.Name)
	}
	return names
}

func (c *Client) fetchRecentVotes(ctx context.Context, memberID string) []Vote {
	url := fmt.Sprintf("%s/members/%s/votes.json", c.BaseURL, memberID)

	var payload struct {
		Results []struct {
			Votes []struct {
				Bill struct {
					Number string `json:"number"`
				} `json:"bill"`
				Description string `json:"description"`
				Position    string `json:"position"`
				Date        string `json:"date"`
			} `json:"votes"`
		} `json:"results"`
	}
	if err := c.get(ctx, url, &payload); err != nil {
		return nil
	}
	if len(payload.Results) == 0 {
		return nil
	}

	var votes []Vote
	for _, v := range payload.Results[0].Votes {
		votes = append(votes, Vote{
			Bill:        v.Bill.Number,
			Description: v.Description,
			Position:    v.Position,
			Date:        v.Date,
		})
		if len(votes) == 5 {
			break
		}
	}
	return votes
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("propublica error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}
