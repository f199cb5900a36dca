// Package client is a Go client for the webdesk HTTP API.
//
//	c := client.New("http://localhost:8000")
//	win, err := c.Launch(ctx, "calc")
//	if err != nil {
//		return err
//	}
//	_, err = c.Maximize(ctx, win.ID)
//
// Non-2xx responses come back as *APIError. Mutations on windows that are
// not open succeed at the HTTP level with ActionResult.Success false.
package client
