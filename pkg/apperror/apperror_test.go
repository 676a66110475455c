package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	sentinel := NotFound("appointment not found")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "direct", err: sentinel, want: KindNotFound},
		{name: "wrapped", err: fmt.Errorf("load: %w", sentinel), want: KindNotFound},
		{name: "plain error", err: errors.New("boom"), want: KindServerFault},
		{name: "forbidden", err: Forbidden("nope"), want: KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestSentinelMatchesAfterWrapping(t *testing.T) {
	sentinel := DuplicateResource("payment already exists for this appointment")
	wrapped := fmt.Errorf("create payment: %w", sentinel)

	assert.ErrorIs(t, wrapped, sentinel)
	assert.False(t, errors.Is(wrapped, DuplicateResource("feedback already exists")))
	assert.True(t, IsKind(wrapped, KindDuplicateResource))
	assert.False(t, IsKind(nil, KindDuplicateResource))
}
