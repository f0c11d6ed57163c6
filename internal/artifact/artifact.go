// Package artifact reads and writes the compiled services JSON file.
package artifact

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/agentstation/hostlists/internal/fsutil"
	"github.com/agentstation/hostlists/pkg/constants"
	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/services"
)

// Collection names as they appear in the file.
const (
	BlockedServicesKey = "blocked_services"
	GroupsKey          = "groups"
)

type rawArtifact struct {
	BlockedServices json.RawMessage `json:"blocked_services"`
	Groups          json.RawMessage `json:"groups"`
}

type idProbe struct {
	ID *string `json:"id"`
}

// Read loads the artifact at path. A missing or malformed file is reported
// as *errors.DestinationError; collections that are not arrays of records
// with an id wrap an *errors.InputShapeError.
func Read(path string) (*services.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.DestinationError{Path: path, Err: errors.WrapIO("read", path, err)}
	}
	art, err := Decode(data)
	if err != nil {
		return nil, &errors.DestinationError{Path: path, Err: err}
	}
	return art, nil
}

// Decode parses artifact JSON.
func Decode(data []byte) (*services.Artifact, error) {
	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}

	blocked, err := decodeCollection[services.Service](BlockedServicesKey, raw.BlockedServices)
	if err != nil {
		return nil, err
	}
	groups, err := decodeCollection[services.Group](GroupsKey, raw.Groups)
	if err != nil {
		return nil, err
	}
	return &services.Artifact{BlockedServices: blocked, Groups: groups}, nil
}

// decodeCollection decodes a JSON array whose every element is an object
// with a non-empty string id.
func decodeCollection[T any](name string, raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &errors.InputShapeError{Collection: name, Message: "expected an array"}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, &errors.InputShapeError{Collection: name, Message: err.Error()}
	}

	var bad []int
	for i, e := range elems {
		var probe idProbe
		if err := json.Unmarshal(e, &probe); err != nil || probe.ID == nil || *probe.ID == "" {
			bad = append(bad, i)
		}
	}
	if len(bad) > 0 {
		return nil, &errors.InputShapeError{Collection: name, Indexes: bad}
	}

	out := make([]T, len(elems))
	for i, e := range elems {
		if err := json.Unmarshal(e, &out[i]); err != nil {
			return nil, &errors.InputShapeError{Collection: name, Indexes: []int{i}, Message: err.Error()}
		}
	}
	return out, nil
}

// Encode renders the artifact as written to disk: two-space indentation,
// HTML characters left as is and a trailing newline.
func Encode(art *services.Artifact) ([]byte, error) {
	out := *art
	out.BlockedServices = append([]services.Service(nil), art.BlockedServices...)
	out.Normalize()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write atomically replaces the artifact at path. On failure the previous
// file is left untouched and an *errors.ArtifactWriteError is returned.
func Write(path string, art *services.Artifact) error {
	data, err := Encode(art)
	if err != nil {
		return &errors.ArtifactWriteError{Path: path, Err: err}
	}
	return WriteEncoded(path, data)
}

// WriteEncoded atomically replaces the artifact at path with data produced
// by Encode.
func WriteEncoded(path string, data []byte) error {
	if err := fsutil.WriteFileAtomic(path, data, constants.FilePermissions); err != nil {
		return &errors.ArtifactWriteError{Path: path, Err: errors.WrapIO("write", path, err)}
	}
	return nil
}
