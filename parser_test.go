package coerce

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// grade exposes its own textual parse contract
type grade struct {
	Score int
}

func (g *grade) UnmarshalText(text []byte) error {
	value, err := strconv.Atoi(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	g.Score = value
	return nil
}

// opaque exposes no parse contract at all
type opaque struct {
	Data []string
}

type severity int

const (
	severityLow severity = iota + 1
	severityHigh
)

func TestCoercer_RoundTrip(t *testing.T) {
	coercer := New(DefaultOptions())

	var testCases = []struct {
		description string
		value       interface{}
		target      reflect.Type
	}{
		{
			description: "int round trip",
			value:       42,
			target:      reflect.TypeOf(0),
		},
		{
			description: "negative int round trip",
			value:       -311,
			target:      reflect.TypeOf(0),
		},
		{
			description: "bool round trip",
			value:       true,
			target:      reflect.TypeOf(false),
		},
		{
			description: "float round trip",
			value:       3.25,
			target:      reflect.TypeOf(0.0),
		},
		{
			description: "custom struct round trip",
			value:       grade{Score: 87},
			target:      reflect.TypeOf(grade{}),
		},
	}

	for _, testCase := range testCases {
		text, ok := asText(testCase.value)
		if !ok { // custom struct renders through its parsed field
			text = fmt.Sprintf("%v", testCase.value.(grade).Score)
		}
		actual, ok := coercer.Optional(text, testCase.target)
		assert.True(t, ok, testCase.description)
		assert.EqualValues(t, testCase.value, actual, testCase.description)
	}
}

func TestCoercer_Register(t *testing.T) {
	type level string

	coercer := New(DefaultOptions())
	err := coercer.Register(func(text string) (severity, bool) {
		switch text {
		case "low":
			return severityLow, true
		case "high":
			return severityHigh, true
		}
		return 0, false
	})
	assert.Nil(t, err)

	err = coercer.Register(func(text string) (level, error) {
		if text == "" {
			return "", fmt.Errorf("empty level")
		}
		return level(strings.ToUpper(text)), nil
	})
	assert.Nil(t, err)

	actual, ok := coercer.Optional("high", reflect.TypeOf(severity(0)))
	assert.True(t, ok)
	assert.EqualValues(t, severityHigh, actual)

	_, ok = coercer.Optional("critical", reflect.TypeOf(severity(0)))
	assert.False(t, ok)

	actual, ok = coercer.Optional("debug", reflect.TypeOf(level("")))
	assert.True(t, ok)
	assert.EqualValues(t, level("DEBUG"), actual)
}

func TestCoercer_RegisterInvalid(t *testing.T) {
	coercer := New(DefaultOptions())

	var testCases = []struct {
		description string
		parser      interface{}
	}{
		{description: "not a func", parser: "abc"},
		{description: "nil parser", parser: nil},
		{description: "no input", parser: func() (int, bool) { return 0, false }},
		{description: "non textual input", parser: func(v int) (int, bool) { return v, true }},
		{description: "no output", parser: func(text string) {}},
		{description: "invalid flag", parser: func(text string) (int, int) { return 0, 0 }},
	}
	for _, testCase := range testCases {
		err := coercer.Register(testCase.parser)
		assert.NotNil(t, err, testCase.description)
	}
}

func TestCoercer_EnumNumericValue(t *testing.T) {
	coercer := New(DefaultOptions())
	actual, ok := coercer.Optional("2", reflect.TypeOf(severity(0)))
	assert.True(t, ok)
	assert.EqualValues(t, severityHigh, actual)

	_, ok = coercer.Optional("high", reflect.TypeOf(severity(0)))
	assert.False(t, ok)
}

func TestCoercer_ResolveIdempotence(t *testing.T) {
	coercer := New(DefaultOptions())
	target := reflect.TypeOf(grade{})

	actual, ok := coercer.Optional("91", target)
	assert.True(t, ok)
	assert.EqualValues(t, grade{Score: 91}, actual)
	assert.EqualValues(t, 1, atomic.LoadInt64(&coercer.discoveries))

	wg := sync.WaitGroup{}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				actual, ok := coercer.Optional("91", target)
				assert.True(t, ok)
				assert.EqualValues(t, grade{Score: 91}, actual)
			}
		}()
	}
	wg.Wait()
	// warm cache: no further discovery runs
	assert.EqualValues(t, 1, atomic.LoadInt64(&coercer.discoveries))
}

func TestCoercer_ConcurrentColdResolve(t *testing.T) {
	coercer := New(DefaultOptions())
	target := reflect.TypeOf(grade{})

	results := make([]interface{}, 32)
	wg := sync.WaitGroup{}
	for i := range results {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			ret, ok := coercer.Optional("55", target)
			assert.True(t, ok)
			results[index] = ret
		}(i)
	}
	wg.Wait()
	for i := range results {
		assert.EqualValues(t, grade{Score: 55}, results[i])
	}
}

func TestCoercer_NoParserKind(t *testing.T) {
	coercer := New(DefaultOptions())
	target := reflect.TypeOf(opaque{})

	_, ok := coercer.Optional("anything", target)
	assert.False(t, ok)
	_, ok = coercer.Optional("123", target)
	assert.False(t, ok)
	assert.EqualValues(t, opaque{}, coercer.Value("anything", target))
}
