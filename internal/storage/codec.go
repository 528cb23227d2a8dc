package storage

import (
	"encoding/json"
	"errors"

	"strider/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeCheckpoint(cp model.Checkpoint) ([]byte, error) {
	return json.Marshal(cp)
}

func DecodeCheckpoint(data []byte) (model.Checkpoint, error) {
	var cp model.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return model.Checkpoint{}, err
	}
	if err := checkVersion(cp.VersionedRecord); err != nil {
		return model.Checkpoint{}, err
	}
	return cp, nil
}

func EncodeSeedPool(pool model.SeedPool) ([]byte, error) {
	return json.Marshal(pool)
}

func DecodeSeedPool(data []byte) (model.SeedPool, error) {
	var pool model.SeedPool
	if err := json.Unmarshal(data, &pool); err != nil {
		return model.SeedPool{}, err
	}
	if err := checkVersion(pool.VersionedRecord); err != nil {
		return model.SeedPool{}, err
	}
	return pool, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
