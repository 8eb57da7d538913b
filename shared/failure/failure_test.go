package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"frontdesk/shared/failure"
)

func TestFailure_CodesAndKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind failure.Kind
	}{
		{name: "validation", err: failure.Validation("bad input"), wantCode: http.StatusBadRequest, wantKind: failure.KindValidation},
		{name: "precondition", err: failure.Precondition("not ready"), wantCode: http.StatusPreconditionFailed, wantKind: failure.KindPrecondition},
		{name: "availability fetch", err: failure.AvailabilityFetch(errors.New("boom")), wantCode: http.StatusBadGateway, wantKind: failure.KindAvailabilityFetch},
		{name: "submission", err: failure.Submission(errors.New("boom")), wantCode: http.StatusBadGateway, wantKind: failure.KindSubmission},
		{name: "network", err: failure.Network(errors.New("refused")), wantCode: http.StatusServiceUnavailable, wantKind: failure.KindNetwork},
		{name: "upstream keeps its status", err: failure.Upstream(http.StatusConflict, "taken"), wantCode: http.StatusConflict, wantKind: failure.KindUpstream},
		{name: "not found", err: failure.NotFound("booking"), wantCode: http.StatusNotFound, wantKind: failure.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantKind, failure.GetKind(tt.err))
			assert.True(t, failure.IsKind(tt.err, tt.wantKind))
		})
	}
}

func TestFailure_NonFailureErrors(t *testing.T) {
	err := errors.New("plain")

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Empty(t, failure.GetKind(err))
	assert.False(t, failure.IsKind(err, failure.KindValidation))
}

func TestFailure_WrappedFailureIsStillRecognized(t *testing.T) {
	inner := failure.Validation("bad input")
	wrapped := fmt.Errorf("handling request: %w", inner)

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(wrapped))
	assert.Equal(t, failure.KindValidation, failure.GetKind(wrapped))
}
