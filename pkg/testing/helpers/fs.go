// Batocera Ports
// Copyright (c) 2026 The Batocera Ports Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Batocera Ports.
//
// Batocera Ports is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Batocera Ports is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Batocera Ports.  If not, see <http://www.gnu.org/licenses/>.

package helpers

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FSHelper builds emulator installations on an afero filesystem for tests.
type FSHelper struct {
	Fs afero.Fs
}

func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// CreateDirectoryStructure creates files and directories from a nested map.
// String and []byte values are file contents, map values are directories
// and nil is an empty directory.
func (h *FSHelper) CreateDirectoryStructure(structure map[string]any) error {
	return h.createStructureRecursive("", structure)
}

func (h *FSHelper) createStructureRecursive(basePath string, structure map[string]any) error {
	for name, content := range structure {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := h.WriteFile(fullPath, []byte(v)); err != nil {
				return err
			}
		case []byte:
			if err := h.WriteFile(fullPath, v); err != nil {
				return err
			}
		case map[string]any:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
			}
			if err := h.createStructureRecursive(fullPath, v); err != nil {
				return err
			}
		case nil:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create empty directory %s: %w", fullPath, err)
			}
		}
	}
	return nil
}

func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	if err != nil {
		return false
	}
	return exists
}

func (h *FSHelper) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

func (h *FSHelper) WriteFile(path string, content []byte) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for file %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

func (h *FSHelper) ListFiles(path string) ([]string, error) {
	files, err := afero.ReadDir(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	fileNames := make([]string, len(files))
	for i, file := range files {
		fileNames[i] = file.Name()
	}

	return fileNames, nil
}

// Installation holds the paths of a fake emulator installation.
type Installation struct {
	Root       string
	RetroArch  string
	Cores      string
	M2Emulator string
	ROMs       string
}

// GetInstallationStructure describes RetroArch with the bluemsx and snes9x
// cores, both Model 2 Emulator builds and a few games.
func GetInstallationStructure() map[string]any {
	return map[string]any{
		"emulators": map[string]any{
			"retroarch": map[string]any{
				"retroarch":     []byte{0x7F, 0x45, 0x4C, 0x46}, // ELF header
				"retroarch.exe": []byte{0x4D, 0x5A},             // MZ header
				"cores": map[string]any{
					"bluemsx_libretro.so":  []byte{0x7F, 0x45, 0x4C, 0x46},
					"snes9x_libretro.so":   []byte{0x7F, 0x45, 0x4C, 0x46},
					"bluemsx_libretro.dll": []byte{0x4D, 0x5A},
				},
			},
			"m2emulator": map[string]any{
				"emulator.exe":          []byte{0x4D, 0x5A},
				"emulator_multicpu.exe": []byte{0x4D, 0x5A},
				"roms":                  nil,
			},
		},
		"roms": map[string]any{
			"msx2": map[string]any{
				"game.rom": []byte{0x41, 0x42}, // MSX cartridge header
			},
			"model2": map[string]any{
				"daytona.zip": []byte{0x50, 0x4B}, // ZIP header
				"vf2.zip":     []byte{0x50, 0x4B},
			},
		},
		"bios":  nil,
		"saves": nil,
	}
}

// SetupInstallation creates the installation structure under root.
func (h *FSHelper) SetupInstallation(root string) (Installation, error) {
	if err := h.createStructureRecursive(root, GetInstallationStructure()); err != nil {
		return Installation{}, err
	}
	return Installation{
		Root:       root,
		RetroArch:  filepath.Join(root, "emulators", "retroarch"),
		Cores:      filepath.Join(root, "emulators", "retroarch", "cores"),
		M2Emulator: filepath.Join(root, "emulators", "m2emulator"),
		ROMs:       filepath.Join(root, "roms"),
	}, nil
}
