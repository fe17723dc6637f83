package gaia

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrDomain reports a subdomain that serves an HTML page instead of the chat API.
	ErrDomain = errors.New("domain error")
	// ErrRequestFailure reports a transport failure or an unexpected payload.
	ErrRequestFailure = errors.New("request failure")
)

// Kind classifies the outcome of one chat-completion call.
type Kind int

const (
	KindSuccess Kind = iota
	KindDomainError
	KindRequestFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindDomainError:
		return "domain_error"
	case KindRequestFailure:
		return "request_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Response is the classified result of Ask.
//
// Escalated is set when the transport treated the call as failed
// (status >= 500 or no response at all). For KindDomainError it separates
// an HTML page served normally ("bad domain") from one that came back
// with a server error ("invalid domain").
type Response struct {
	Kind      Kind
	Content   string
	Detail    string
	Status    int
	Escalated bool
}

// Err returns nil on success and a wrapped sentinel otherwise.
func (r Response) Err() error {
	switch r.Kind {
	case KindSuccess:
		return nil
	case KindDomainError:
		if r.Escalated {
			return fmt.Errorf("%w: invalid domain", ErrDomain)
		}
		return fmt.Errorf("%w: bad domain", ErrDomain)
	default:
		return fmt.Errorf("%w: %s", ErrRequestFailure, r.Detail)
	}
}

var htmlDocument = regexp.MustCompile(`(?i)^\s*<!doctype html`)

// IsHTMLDocument reports whether body starts, after leading whitespace,
// with an HTML document declaration.
func IsHTMLDocument(body []byte) bool {
	return htmlDocument.Match(body)
}
