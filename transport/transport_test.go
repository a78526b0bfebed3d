// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyState_String(t *testing.T) {
	assert.Equal(t, "Unsent", Unsent.String())
	assert.Equal(t, "Opened", Opened.String())
	assert.Equal(t, "HeadersReceived", HeadersReceived.String())
	assert.Equal(t, "Loading", Loading.String())
	assert.Equal(t, "Done", Done.String())
	assert.Equal(t, "ReadyState(9)", ReadyState(9).String())
}

func TestUnavailable(t *testing.T) {
	t.Run("custom error", func(t *testing.T) {
		cause := errors.New("no network stack")
		f := Unavailable(cause)
		assert.Same(t, cause, f.Available())
		h, err := f.New()
		assert.Nil(t, h)
		assert.Same(t, cause, err)
	})
	t.Run("nil error", func(t *testing.T) {
		f := Unavailable(nil)
		require.Error(t, f.Available())
		_, err := f.New()
		assert.EqualError(t, err, "ajax/transport: no transport available")
	})
}
