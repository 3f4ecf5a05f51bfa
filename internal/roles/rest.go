package roles

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RESTClient talks to the chat platform's HTTP API. The platform's
// member-role endpoints are already idempotent (adding a held role and
// removing an absent one both return success), which is what the
// reconciler relies on.
type RESTClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewRESTClient(baseURL, token string) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *RESTClient) AddRole(ctx context.Context, guildID, userID, roleID string) error {
	return c.do(ctx, http.MethodPut, guildID, userID, roleID)
}

func (c *RESTClient) RemoveRole(ctx context.Context, guildID, userID, roleID string) error {
	return c.do(ctx, http.MethodDelete, guildID, userID, roleID)
}

func (c *RESTClient) do(ctx context.Context, method, guildID, userID, roleID string) error {
	url := fmt.Sprintf("%s/guilds/%s/members/%s/roles/%s", c.baseURL, guildID, userID, roleID)
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		// Role or member is gone; nothing left to converge.
		return nil
	default:
		return fmt.Errorf("role %s %s on guild %s returned %d", method, roleID, guildID, resp.StatusCode)
	}
}
