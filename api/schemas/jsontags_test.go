package schemas_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/gridpilot/api/schemas"
)

// TestStructJSONTags uses reflection to verify that the `json` tags on struct
// fields are correct. The persisted frame records and submitted actions are
// external contracts, so these tags must not drift.
func TestStructJSONTags(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name         string
		structRef    interface{}
		expectedTags map[string]string
	}{
		{
			name:      "Frame",
			structRef: schemas.Frame{},
			expectedTags: map[string]string{
				"GameID":           "game_id",
				"Frame":            "frame",
				"State":            "state",
				"Score":            "score",
				"GUID":             "guid",
				"FullReset":        "full_reset",
				"AvailableActions": "available_actions",
			},
		},
		{
			name:      "Action",
			structRef: schemas.Action{},
			expectedTags: map[string]string{
				"Kind":        "kind",
				"Coordinates": "coordinates,omitempty",
				"Reasoning":   "reasoning,omitempty",
				"Rationale":   "rationale,omitempty",
			},
		},
		{
			name:      "Coordinates",
			structRef: schemas.Coordinates{},
			expectedTags: map[string]string{
				"X": "x",
				"Y": "y",
			},
		},
		{
			name:      "Rationale",
			structRef: schemas.Rationale{},
			expectedTags: map[string]string{
				"DesiredAction": "desired_action",
				"Reason":        "reason",
			},
		},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			structType := reflect.TypeOf(tt.structRef)
			require.Equal(t, reflect.Struct, structType.Kind())

			for fieldName, expectedTag := range tt.expectedTags {
				field, ok := structType.FieldByName(fieldName)
				require.True(t, ok, "field %s not found on %s", fieldName, tt.name)
				assert.Equal(t, expectedTag, field.Tag.Get("json"),
					"unexpected json tag on %s.%s", tt.name, fieldName)
			}
			assert.Equal(t, len(tt.expectedTags), structType.NumField(),
				"field count changed on %s; update the expected tags", tt.name)
		})
	}
}
