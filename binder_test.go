package coerce

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBinder_Bind(t *testing.T) {
	type record struct {
		Id       int
		Name     string  `format:"name=full_name"`
		Score    float64 `json:"score"`
		Active   bool
		Joined   time.Time  `timeLayout:"02/01/2006"`
		Expiry   *time.Time `timeLayout:"2006-01-02"`
		Attempts *int
		Secret   string `format:"-"`
	}

	coercer := New(DefaultOptions())
	binder, err := coercer.Binder(reflect.TypeOf(record{}))
	if !assert.Nil(t, err) {
		return
	}

	var testCases = []struct {
		description string
		row         map[string]interface{}
		expect      record
	}{
		{
			description: "mixed textual and numeric row",
			row: map[string]interface{}{
				"Id":        "17",
				"full_name": "John Wick",
				"score":     "87.5",
				"active":    "true",
				"Joined":    "15/03/2024",
				"Expiry":    "2025-01-01",
				"Attempts":  "3",
				"Secret":    "hidden",
			},
			expect: record{
				Id:       17,
				Name:     "John Wick",
				Score:    87.5,
				Active:   true,
				Joined:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
				Expiry:   timePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
				Attempts: intPtr(3),
			},
		},
		{
			description: "serial date and malformed fields",
			row: map[string]interface{}{
				"Id":     45000,
				"Joined": "45000",
				"score":  "n/a",
			},
			expect: record{
				Id:     45000,
				Joined: serialEpoch.AddDate(0, 0, 45000),
			},
		},
		{
			description: "absent optional fields stay nil",
			row: map[string]interface{}{
				"Expiry":   "",
				"Attempts": "many",
			},
			expect: record{},
		},
	}

	for _, testCase := range testCases {
		actual := record{}
		err := binder.Bind(&actual, testCase.row)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestBinder_InvalidUse(t *testing.T) {
	coercer := New(DefaultOptions())

	_, err := coercer.Binder(123)
	assert.NotNil(t, err)

	type record struct{ Id int }
	binder, err := coercer.Binder(&record{})
	if !assert.Nil(t, err) {
		return
	}
	type other struct{ Id int }
	assert.NotNil(t, binder.Bind(&other{}, map[string]interface{}{"Id": 1}))
	assert.NotNil(t, binder.Bind(nil, map[string]interface{}{"Id": 1}))
}

func timePtr(t time.Time) *time.Time {
	return &t
}
