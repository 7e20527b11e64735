package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunDispatch(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(nil, strings.NewReader(""), &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: dfcurve")

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"price"}, strings.NewReader(""), &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "price"`)

	stdout.Reset()
	assert.Equal(t, 0, run([]string{"help"}, strings.NewReader(""), &stdout, &stderr))
	assert.Contains(t, stdout.String(), "discount")

	stdout.Reset()
	code := run([]string{"df", "-times", "1"}, strings.NewReader("zero: {rate: 0.05}\nlogging: {level: error}\n"), &stdout, &stderr)
	assert.Equal(t, 0, code, stdout.String())
	assert.Contains(t, stdout.String(), `"discount":0.95238`)
}
