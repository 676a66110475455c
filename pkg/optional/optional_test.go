package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Name       Value[string] `json:"name"`
	EmployeeID Value[string] `json:"employee_id"`
	Duration   Value[int]    `json:"duration"`
}

func TestUnmarshalDistinguishesAbsentNullAndValue(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"employee_id": null, "duration": 0}`), &p))

	assert.False(t, p.Name.Set, "absent key must stay unset")

	assert.True(t, p.EmployeeID.Set)
	assert.True(t, p.EmployeeID.Null)
	assert.Nil(t, p.EmployeeID.Ptr())

	assert.True(t, p.Duration.HasValue(), "zero is a value, not a missing field")
	require.NotNil(t, p.Duration.Ptr())
	assert.Equal(t, 0, *p.Duration.Ptr())
}

func TestEmptyStringIsAValue(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"name": ""}`), &p))

	assert.True(t, p.Name.HasValue())
	assert.Equal(t, "", p.Name.Value)
}

func TestUnmarshalRejectsWrongType(t *testing.T) {
	var p patch
	assert.Error(t, json.Unmarshal([]byte(`{"duration": "sixty"}`), &p))
}
