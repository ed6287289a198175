package symptoms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_UnmarshalAcceptsArrayAndString(t *testing.T) {
	var body struct {
		Symptoms List `json:"symptoms"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"symptoms":["Fever"," cough "]}`), &body))
	assert.Equal(t, List{"Fever", " cough "}, body.Symptoms)

	require.NoError(t, json.Unmarshal([]byte(`{"symptoms":"fever, headache"}`), &body))
	assert.Equal(t, List{"fever, headache"}, body.Symptoms)

	body.Symptoms = nil
	require.NoError(t, json.Unmarshal([]byte(`{"symptoms":null}`), &body))
	assert.Nil(t, body.Symptoms)
}

func TestList_UnmarshalRejectsOtherTypes(t *testing.T) {
	var body struct {
		Symptoms List `json:"symptoms"`
	}

	assert.Error(t, json.Unmarshal([]byte(`{"symptoms":42}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"symptoms":[1,2]}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"symptoms":{"a":"b"}}`), &body))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"delimited string", []string{" Fever, HEADACHE ,nausea"}, []string{"fever", "headache", "nausea"}},
		{"array", []string{"Joint_Pain", "cough"}, []string{"joint_pain", "cough"}},
		{"mixed", []string{"fever,cough", " skin_rash "}, []string{"fever", "cough", "skin_rash"}},
		{"blank entries dropped", []string{" ", ",,", ""}, []string{}},
		{"nil", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "fever,cough", Join([]string{"fever", "cough"}))
	assert.Equal(t, "", Join(nil))
}
