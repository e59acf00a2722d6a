package game

import (
	"math/rand"
	"strings"
)

// The fixed race corpus. Selection is uniform per race start; repeats
// across consecutive races in the same room are allowed.
var passages = []string{
	"in a small town surrounded by rolling hills the night shift radio host keeps a sleepy audience awake with stories about lost astronauts curious inventors and brave gardeners who race to save their crops before a storm rolls in",
	"the research vessel drifted across the glowing bay while marine biologists entered data swapped jokes about their favorite coffee and tried to predict which coral reef would reveal the next surprising symbiotic partnership",
	"at sunrise the cycling team rolled onto the highway matching cadence with the metronome ticking in their headsets as the coach shouted split times wind gust warnings and reminders to breathe through every brutal climb",
}

func choosePassage() string {
	return passages[rand.Intn(len(passages))]
}

func countWords(passage string) int {
	return len(strings.Fields(passage))
}
