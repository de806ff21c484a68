package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultAppConfig()
	cfg.Machine.ProgramName = "SHOP2"
	cfg.Defaults.Stock.XSize = 250

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "SHOP2", loaded.Machine.ProgramName)
	assert.Equal(t, 250.0, loaded.Defaults.Stock.XSize)
	assert.Equal(t, cfg.CoolantOptions, loaded.CoolantOptions)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), cfg)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSelectCoolant_PreservesOrder(t *testing.T) {
	cfg := DefaultAppConfig()

	got, err := cfg.SelectCoolant([]string{"Oil Mist", "Air"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Oil Mist", got[0].Name)
	assert.Equal(t, model.CoolantCodes{OnCode: 8, OffCode: 9}, got[0].Codes)
	assert.Equal(t, "Air", got[1].Name)
	assert.Equal(t, model.CoolantCodes{OnCode: 81, OffCode: 82}, got[1].Codes)
}

func TestSelectCoolant_UnknownName(t *testing.T) {
	cfg := DefaultAppConfig()

	_, err := cfg.SelectCoolant([]string{"Air", "Kerosene"})
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, cerr.Key, "Kerosene")
}

func TestCoolantNames_Sorted(t *testing.T) {
	names := DefaultAppConfig().CoolantNames()
	assert.Equal(t, []string{"Air", "Cold air", "Internal air", "Oil Mist"}, names)
}
