package config

const (
	defaultDatasetDir = "~/ljspeech_dataset"
	defaultWorkDir    = "~/.local/share/clipforge/work"
	defaultLogDir     = "~/.local/share/clipforge/logs"

	defaultMinDuration = 1.0
	defaultMaxDuration = 10.0
	defaultSampleRate  = 22050
	defaultChannels    = 1

	defaultSeparationModel   = "htdemucs"
	defaultSeparationTimeout = 120

	defaultSilenceThresholdDB = -50.0
	defaultChunkMs            = 10
	defaultFadeMs             = 50
	defaultHighpassHz         = 200
	defaultLowpassHz          = 3500
	defaultGainDB             = 2.0

	defaultClipsPerSegment = 3
	defaultCombinePauseMs  = 100

	defaultStretchSpeed = 0.9

	defaultDownloadSleepSeconds = 3
	defaultDownloadTimeout      = 1800

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DatasetDir: defaultDatasetDir,
			WorkDir:    defaultWorkDir,
			LogDir:     defaultLogDir,
		},
		Download: Download{
			Languages:    []string{"bn", "bn-IN", "en"},
			SleepSeconds: defaultDownloadSleepSeconds,
			Timeout:      defaultDownloadTimeout,
		},
		Segment: Segment{
			MinDuration: defaultMinDuration,
			MaxDuration: defaultMaxDuration,
			SampleRate:  defaultSampleRate,
			Channels:    defaultChannels,
		},
		Separation: Separation{
			Enabled: false,
			Model:   defaultSeparationModel,
			Timeout: defaultSeparationTimeout,
		},
		Clean: Clean{
			SilenceThresholdDB: defaultSilenceThresholdDB,
			ChunkMs:            defaultChunkMs,
			FadeOut:            true,
			FadeMs:             defaultFadeMs,
			HighpassHz:         defaultHighpassHz,
			LowpassHz:          defaultLowpassHz,
			GainDB:             defaultGainDB,
		},
		Combine: Combine{
			ClipsPerSegment: defaultClipsPerSegment,
			MaxDuration:     defaultMaxDuration,
			PauseMs:         defaultCombinePauseMs,
		},
		Stretch: Stretch{
			Speed: defaultStretchSpeed,
		},
		Workflow: Workflow{
			QueuePollInterval:  5,
			ErrorRetryInterval: 10,
			HeartbeatInterval:  15,
			HeartbeatTimeout:   120,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
