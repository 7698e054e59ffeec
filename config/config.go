// Package config loads a mission phase's Managed Parameters from a file
// or the environment, using viper the way the reference pack's service
// daemons do (SPEC_FULL.md §2 ambient additions).
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ccsds-go/tmframe"
)

// Topology describes every channel this process should stand up: one
// Master Channel per mission phase, each carrying a set of Virtual
// Channel identifiers, multiplexed onto a single Physical Channel.
type Topology struct {
	SpacecraftId      uint16  `mapstructure:"spacecraft_id"`
	TransferFrameVersion uint8 `mapstructure:"transfer_frame_version"`
	DataFieldSize     int     `mapstructure:"data_field_size"`
	QueueDepth        int     `mapstructure:"queue_depth"`
	VirtualChannelIds []uint8 `mapstructure:"virtual_channel_ids"`
	SyncEnabled       bool    `mapstructure:"sync_enabled"`
}

// Load reads a Topology from path (any format viper supports: YAML,
// JSON, TOML, ...) with TMFRAME_-prefixed environment variable
// overrides, e.g. TMFRAME_SPACECRAFT_ID.
func Load(path string) (Topology, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("TMFRAME")
	v.AutomaticEnv()

	v.SetDefault("transfer_frame_version", 0)
	v.SetDefault("data_field_size", tmframe.DefaultDataFieldSize)
	v.SetDefault("queue_depth", tmframe.DefaultQueueDepth)
	v.SetDefault("sync_enabled", true)

	if err := v.ReadInConfig(); err != nil {
		return Topology{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var t Topology
	if err := v.Unmarshal(&t); err != nil {
		return Topology{}, fmt.Errorf("config: unmarshalling: %w", err)
	}
	return t, nil
}

// MissionPhaseParameters converts a Topology into the
// tmframe.MissionPhaseParameters it describes, validating it against the
// core's bit-width and Non-goal constraints.
func (t Topology) MissionPhaseParameters() (tmframe.MissionPhaseParameters, error) {
	p := tmframe.MissionPhaseParameters{
		TransferFrameVersion: t.TransferFrameVersion,
		SpacecraftId:         t.SpacecraftId,
		IsSyncFlagEnabled:    t.SyncEnabled,
		DataFieldSize:        t.DataFieldSize,
	}
	if err := tmframe.ValidateManagedParameters(p); err != nil {
		return tmframe.MissionPhaseParameters{}, err
	}
	return p, nil
}
