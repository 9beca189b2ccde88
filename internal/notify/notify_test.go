package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.Notify(LevelSuccess, "Order created successfully!")
	w.Notify(LevelError, "Payment verification failed")

	assert.Equal(t, "✔ Order created successfully!\n✖ Payment verification failed\n", buf.String())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	assert.Equal(t, Event{}, r.Last())

	r.Notify(LevelInfo, "one")
	r.Notify(LevelWarning, "two")

	assert.Len(t, r.Events(), 2)
	assert.Equal(t, Event{Level: LevelWarning, Message: "two"}, r.Last())
}
