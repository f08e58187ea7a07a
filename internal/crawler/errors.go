package crawler

import "errors"

// ErrUnexpectedStatus is returned by Fetcher.Fetch when the server answers
// with a status code other than 200 OK.
var ErrUnexpectedStatus = errors.New("unexpected status code")
