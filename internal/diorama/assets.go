package diorama

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Fixed asset filenames on the storage volume.
const (
	AssetPowerOn      = "powerup.wav"
	AssetPowerOff     = "powerdown.wav"
	AssetSelfDestruct = "selfdestruct.wav"
	AssetAmbient      = "idle.wav"
)

// EffectAssets is the effect catalog: indices 0-8 are battle sounds,
// index 9 is the quantum sound, so a uniform pick is battle-weighted
// 9:1.
var EffectAssets = [...]string{
	"battle1.wav",
	"battle2.wav",
	"battle3.wav",
	"battle4.wav",
	"battle5.wav",
	"battle6.wav",
	"battle7.wav",
	"battle8.wav",
	"battle9.wav",
	"quantum.wav",
}

const quantumIndex = 9

// AssetOpener resolves an asset name to a readable stream.
type AssetOpener interface {
	Open(name string) (io.ReadCloser, error)
}

// Catalog resolves asset names against a directory on the storage
// volume.
type Catalog struct {
	dir string
}

// NewCatalog fails when the volume is missing, which the caller treats
// as fatal before the mode machine ever starts.
func NewCatalog(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("asset volume: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset volume: %s is not a directory", dir)
	}
	return &Catalog{dir: dir}, nil
}

func (c *Catalog) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(c.dir, name))
	if err != nil {
		return nil, fmt.Errorf("open asset %s: %w", name, err)
	}
	return f, nil
}

// PickEffect draws uniformly over the effect catalog and reports
// whether the draw landed on the quantum variant.
func PickEffect(r *Rand) (name string, quantum bool) {
	i := r.Intn(len(EffectAssets))
	return EffectAssets[i], i == quantumIndex
}
