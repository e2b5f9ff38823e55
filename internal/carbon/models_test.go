package carbon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordJSON = `{"regionid":13,"dnoregion":"UKPN London","shortname":"London","region":"London","postcode":"SW1A","data":[{"from":"2024-01-01T12:00Z","to":"2024-01-01T12:30Z","intensity":{"forecast":120,"index":"moderate"}}]}`

func TestIntensityRegion(t *testing.T) {
	t.Run("first element of array", func(t *testing.T) {
		data := Intensity(`[` + recordJSON + `,{"regionid":1,"shortname":"North Scotland"}]`)
		meta := data.Region()

		require.Len(t, meta, 4)
		assert.JSONEq(t, `13`, string(meta["regionid"]))
		assert.JSONEq(t, `"UKPN London"`, string(meta["dnoregion"]))
		assert.JSONEq(t, `"London"`, string(meta["shortname"]))
		assert.JSONEq(t, `"London"`, string(meta["region"]))
	})

	t.Run("object is its own record", func(t *testing.T) {
		meta := Intensity(recordJSON).Region()
		assert.JSONEq(t, `"London"`, string(meta["shortname"]))
	})

	t.Run("missing keys omitted", func(t *testing.T) {
		meta := Intensity(`[{"shortname":"London"}]`).Region()
		assert.Equal(t, RegionMetadata{"shortname": json.RawMessage(`"London"`)}, meta)
	})

	t.Run("not well formed", func(t *testing.T) {
		for _, raw := range []string{``, `null`, `[]`, `[1,2]`, `["a"]`, `[null]`, `"text"`, `42`, `{}`, `[{"from":"x"}]`} {
			assert.Empty(t, Intensity(raw).Region(), raw)
		}
	})
}

func TestIntensityJSONPassthrough(t *testing.T) {
	raw := `[{"regionid": 13, "extra": {"nested": [1, 2, 3]}}]`

	var payload struct {
		Data Intensity `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"data":`+raw+`}`), &payload))

	out, err := json.Marshal(map[string]any{"data": payload.Data})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":`+raw+`}`, string(out))

	out, err = json.Marshal(Intensity(nil))
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestEnvelope(t *testing.T) {
	body := Envelope("sw1a 1aa", Intensity(`[`+recordJSON+`]`))

	out, err := json.Marshal(body)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "SW1A", got["postcode"])
	assert.Equal(t, "London", got["shortname"])
	assert.Equal(t, "London", got["region"])
	assert.Equal(t, "UKPN London", got["dnoregion"])
	assert.Equal(t, float64(13), got["regionid"])
	assert.Len(t, got["data"], 1)
}

func TestEnvelopeWithoutMetadata(t *testing.T) {
	body := Envelope("M1 1AE", Intensity(`[]`))

	assert.Equal(t, "M1", body["postcode"])
	assert.Contains(t, body, "data")
	for _, k := range RegionKeys {
		assert.NotContains(t, body, k)
	}
}

func TestErrors(t *testing.T) {
	missing := &MissingParameterError{Name: "postcode"}
	assert.Equal(t, "Missing required query parameter: 'postcode'", missing.Error())

	cause := assert.AnError
	upErr := &UpstreamError{Kind: KindTransport, Err: cause}
	assert.ErrorIs(t, upErr, cause)
	assert.Contains(t, upErr.Error(), "Error calling Carbon Intensity API")

	assert.True(t, (&UpstreamError{Kind: KindStatus, Status: 404, Err: cause}).ClientFault())
	assert.False(t, (&UpstreamError{Kind: KindStatus, Status: 503, Err: cause}).ClientFault())
	assert.False(t, upErr.ClientFault())

	malformed := &UpstreamError{Kind: KindMalformed, Err: cause}
	assert.Contains(t, malformed.Error(), "Unexpected response format")
}
