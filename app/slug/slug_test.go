package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple words", input: "Running Shoes", expected: "running-shoes"},
		{name: "surrounding punctuation", input: "  --Hello, World!--  ", expected: "hello-world"},
		{name: "collapses separators", input: "a   b___c", expected: "a-b-c"},
		{name: "strips accents", input: "Crème Brûlée", expected: "creme-brulee"},
		{name: "keeps digits", input: "iPhone 15 Pro Max", expected: "iphone-15-pro-max"},
		{name: "keeps non latin letters", input: "Смартфоны и гаджеты", expected: "смартфоны-и-гаджеты"},
		{name: "only punctuation", input: "!!!", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Make(tc.input))
		})
	}
}

func TestMakeIsDeterministic(t *testing.T) {
	assert.Equal(t, Make("Garden Tools & Supplies"), Make("Garden Tools & Supplies"))
}
