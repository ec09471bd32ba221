package eventstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
)

type client struct {
	baseURL     string
	accessToken string
}

// New returns a Client talking to a remote SayPlan event store. The access
// token is sent as the session cookie the serve binary expects.
func New(baseURL string, accessToken string) Client {
	return client{
		baseURL:     baseURL,
		accessToken: accessToken,
	}
}

func (client client) sendRequest(
	ctx context.Context,
	method string,
	endpoint string,
	query url.Values,
	body any,
	dst any,
) error {
	u, err := url.Parse(fmt.Sprintf("%s/%s", client.baseURL, endpoint))
	if err != nil {
		return err
	}

	if query != nil {
		u.RawQuery = query.Encode()
	}

	var req *http.Request
	if body != nil {
		var marshalled []byte
		marshalled, err = json.Marshal(body)
		if err != nil {
			return err
		}

		req, err = http.NewRequestWithContext(
			ctx,
			method,
			u.String(),
			bytes.NewBuffer(marshalled),
		)
		if err != nil {
			return err
		}

		req.Header.Add("Content-Type", "application/json")
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u.String(), nil)
		if err != nil {
			return err
		}
	}

	req.AddCookie(&http.Cookie{
		Name:  "accessToken",
		Value: client.accessToken,
	})

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf(
			"event store returned %d for %s %s",
			res.StatusCode,
			method,
			endpoint,
		)
	}

	if dst == nil {
		return nil
	}

	err = httptools.ReadJSON(res.Body, dst)
	if err != nil && err.Error() != "body must not be empty" {
		return err
	}

	return nil
}
