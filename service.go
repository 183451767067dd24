package gamba

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

// SimplifyResponseCode is the outcome code of a Simplify call.
type SimplifyResponseCode int32

// Response codes, wire-compatible with the Gamba service contract.
const (
	SimplifySuccess   SimplifyResponseCode = 0
	SimplifyNotLinear SimplifyResponseCode = 1
	SimplifyFailure   SimplifyResponseCode = 2
)

// String returns the string representation of the code.
func (c SimplifyResponseCode) String() string {
	switch c {
	case SimplifySuccess:
		return "SUCCESS"
	case SimplifyNotLinear:
		return "NOT_LINEAR"
	case SimplifyFailure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

// SimplifyCommand is a request to simplify one expression.
type SimplifyCommand struct {
	// Expression is the textual MBA expression to simplify.
	Expression string `json:"expression"`

	// BitSize is the width of every variable and constant; must be a
	// positive integer no greater than MaxWidth.
	BitSize int32 `json:"bit_size"`

	// CheckLinear rejects non-linear input with NOT_LINEAR instead of
	// attempting general rewriting.
	CheckLinear bool `json:"check_linear"`
}

// SimplifyReply is the outcome of a Simplify call. SimplifiedExpression is
// set if and only if the response code is SUCCESS.
type SimplifyReply struct {
	ResponseCode         SimplifyResponseCode `json:"response_code"`
	SimplifiedExpression string               `json:"simplified_expression,omitempty"`
}

// Service adapts the simplification engine to the request/response
// contract. It holds no mutable state; concurrent calls are independent.
type Service struct {
	// MaxSteps bounds each request's rewrite search. Zero means
	// DefaultMaxSteps.
	MaxSteps int
}

// NewService returns a service with default limits.
func NewService() *Service {
	return &Service{}
}

// Simplify runs one simplification request and always returns a
// well-formed reply. Engine panics (width mismatches and other internal
// invariant violations) are downgraded to FAILURE; a malformed request can
// never take the surrounding process down.
func (s *Service) Simplify(ctx context.Context, cmd SimplifyCommand) (reply SimplifyReply) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("simplify: internal error: %v", r)
			reply = SimplifyReply{ResponseCode: SimplifyFailure}
		}
	}()

	if cmd.BitSize < 1 || cmd.BitSize > MaxWidth {
		log.Warnf("simplify: invalid bit size %d", cmd.BitSize)
		return SimplifyReply{ResponseCode: SimplifyFailure}
	}

	simplifier := &Simplifier{Width: uint(cmd.BitSize), MaxSteps: s.MaxSteps}
	result, err := simplifier.Simplify(ctx, cmd.Expression, cmd.CheckLinear)
	if errors.Is(err, ErrNotLinear) {
		return SimplifyReply{ResponseCode: SimplifyNotLinear}
	} else if err != nil {
		log.Warnf("simplify: %v", err)
		return SimplifyReply{ResponseCode: SimplifyFailure}
	}

	return SimplifyReply{
		ResponseCode:         SimplifySuccess,
		SimplifiedExpression: result,
	}
}
