// Package http is a small HTTP client used for single preflight requests
// against GraphQL endpoints.
//
//	client := http.NewClient(http.WithTimeout(5 * time.Second))
//	req, err := http.NewRequest("POST", "http://localhost:8080/graphql").
//	    WithBody(body).
//	    WithHeaderLines([]string{"Authorization: Bearer token"})
//	if err != nil {
//	    return err
//	}
//	resp, err := client.Do(ctx, req)
package http
