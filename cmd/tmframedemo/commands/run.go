package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccsds-go/tmframe"
	"github.com/ccsds-go/tmframe/config"
)

func newRunCommand() *cobra.Command {
	var configPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a demo Virtual/Master/Physical Channel pipeline and write framed output",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), configPath, outPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a topology config file (yaml/json/toml)")
	cmd.Flags().StringVar(&outPath, "out", "", "path to write the framed octet stream (default: stdout)")
	return cmd
}

func runDemo(ctx context.Context, configPath, outPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logrus.Info("shutdown signal received")
		cancel()
	}()

	topo, params, err := loadTopology(configPath)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	mcid := tmframe.MCID{TFVN: params.TransferFrameVersion, SCID: params.SpacecraftId}
	mcQueue := tmframe.NewFrameQueue(topo.QueueDepth, params.DataFieldSize+8)
	mc := tmframe.NewMasterChannel(mcid, params, mcQueue)

	vcQueues := make([]*tmframe.FrameQueue, len(topo.VirtualChannelIds))
	for i, vcid := range topo.VirtualChannelIds {
		vcQueues[i] = tmframe.NewFrameQueue(topo.QueueDepth, params.DataFieldSize+8)
		idleSdu := make([]byte, params.DataFieldSize)
		source := tmframe.SduSource(func() ([]byte, error) { return idleSdu, nil })
		vc := tmframe.NewVCAVirtualChannel(vcid, params, source, vcQueues[i])
		mc.AddVirtualChannel(vcid, vcQueues[i])
		go runVCLoop(ctx, vc)
	}

	pc := tmframe.NewPhysicalChannel(func(buf []byte) error {
		_, err := out.Write(buf)
		return err
	})
	pc.AddMasterChannel(mcid, mcQueue)

	go runMCLoop(ctx, mc)
	runPCLoop(ctx, pc)
	return nil
}

func loadTopology(configPath string) (config.Topology, tmframe.MissionPhaseParameters, error) {
	if configPath == "" {
		topo := config.Topology{
			SpacecraftId:      0x3FF,
			DataFieldSize:     tmframe.DefaultDataFieldSize,
			QueueDepth:        tmframe.DefaultQueueDepth,
			VirtualChannelIds: []uint8{0, 1},
			SyncEnabled:       true,
		}
		params, err := topo.MissionPhaseParameters()
		return topo, params, err
	}
	topo, err := config.Load(configPath)
	if err != nil {
		return config.Topology{}, tmframe.MissionPhaseParameters{}, err
	}
	params, err := topo.MissionPhaseParameters()
	return topo, params, err
}

func runVCLoop(ctx context.Context, vc *tmframe.VirtualChannel) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := vc.Cycle(ctx); err != nil {
				logrus.WithError(err).WithField("vcid", vc.VCID()).Warn("virtual channel cycle failed")
			}
		}
	}
}

func runMCLoop(ctx context.Context, mc *tmframe.MasterChannel) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := mc.Cycle(ctx); err != nil {
				logrus.WithError(err).Warn("master channel cycle failed")
			}
		}
	}
}

func runPCLoop(ctx context.Context, pc *tmframe.PhysicalChannel) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := pc.Cycle(ctx); err != nil {
				logrus.WithError(err).Warn("physical channel cycle failed")
			}
		}
	}
}
