package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/logger"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/util"
	"github.com/jsphweid/voicelead/voicelead"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

// how many played chords are kept to lead into the next one
const followHistory = 8

var (
	listenWait           time.Duration
	listenAvoidParallels bool
)

func init() {
	listenCmd.Flags().DurationVar(&listenWait, "wait", 80*time.Millisecond, "how long the keys must rest before a chord is taken")
	listenCmd.Flags().BoolVar(&listenAvoidParallels, "avoid-parallels", false, "avoid parallel fifths and octaves")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Voice-leads chords played on a MIDI keyboard",
	Long:  `Listens on MIDI_IN_PORT and prints a voice-led realization of every chord played, leading on from the chords before it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return listen(ctx, cmd.OutOrStdout())
	},
}

// follower collects held keys and voice-leads each settled chord from the
// ones played before it.
type follower struct {
	mu      sync.Mutex
	pressed map[uint8]bool
	history []model.PitchClassSet
	avoid   bool
	out     io.Writer
}

func newFollower(out io.Writer, avoid bool) *follower {
	return &follower{pressed: make(map[uint8]bool), avoid: avoid, out: out}
}

func (f *follower) press(key uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pressed[key] = true
}

func (f *follower) release(key uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pressed, key)
}

// settle takes whatever is held as the next chord. Nothing held, or the same
// harmony as before, is ignored.
func (f *follower) settle() (model.Voicing, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	set := model.FromKeys(util.GetKeys(f.pressed))
	if set == 0 || (len(f.history) > 0 && f.history[len(f.history)-1] == set) {
		return nil, false
	}
	f.history = append(f.history, set)
	if len(f.history) > followHistory {
		f.history = f.history[len(f.history)-followHistory:]
	}

	engine := voicelead.New()
	for i, s := range f.history {
		if err := engine.SetByPitchClassSetAvoidingParallels(float64(i), s, f.avoid); err != nil {
			logger.Error("could not record chord", err, logger.Fields{"set": int(s)})
			return nil, false
		}
	}
	res, err := engine.Resolve()
	if err != nil {
		logger.Error("could not resolve", err, nil)
		return nil, false
	}
	last := res.Chords[len(res.Chords)-1]
	printVoicing(f.out, float64(len(f.history)-1), last.Event.Set, last.Voicing, false)
	for _, r := range res.Relaxations {
		if r.Time == last.Event.Time {
			fmt.Fprintln(f.out, warnStyle.Render(r.String()))
		}
	}
	return last.Voicing, true
}

func listen(ctx context.Context, out io.Writer) error {
	defer midi.CloseDriver()
	port := constants.GetMidiInPort()
	in, err := midi.InPort(port)
	if err != nil {
		return fmt.Errorf("can't find MIDI input %d: %w", port, err)
	}

	f := newFollower(out, listenAvoidParallels)
	debounced := debounce.New(listenWait)
	settle := func() { f.settle() }

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			f.press(key)
			debounced(settle)
		case msg.GetNoteEnd(&ch, &key):
			f.release(key)
		default:
			// ignore
		}
	})
	if err != nil {
		return err
	}
	defer stop()

	logger.Info("listening for chords", logger.Fields{"port": in.String()})
	<-ctx.Done()
	return nil
}
