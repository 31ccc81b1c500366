package lexicon

import "time"

// DefaultDebounce suppresses a second speaking-context decision arriving
// within this window of the previous one. Streaming STT can finalize several
// fragments in quick succession for one continuous utterance.
const DefaultDebounce = 150 * time.Millisecond

// Backchannel acknowledgements: the user is listening, not taking the floor.
var defaultIgnore = []string{
	"yeah", "ok", "okay", "hmm", "uh-huh", "right", "yep", "mmhmm",
	"sure", "understood", "got it", "uh", "um", "ah", "yeah yeah",
	"absolutely", "definitely", "certainly", "sounds good", "i see",
	"i know", "i get it", "makes sense", "got ya", "no kidding",
	"you bet", "for sure", "all right", "alright",
}

// Directive phrases: always an attempt to stop the agent mid-utterance.
var defaultInterrupt = []string{
	"stop", "wait", "no", "hold", "cancel", "pause",
	"hold on", "wait wait", "one second", "one sec", "just a sec",
	"hang on", "slow down", "repeat that", "what", "sorry", "excuse me",
	"never mind", "never", "don't", "don't say that",
}

// Connectives that carry no intent on their own but are tolerated when mixed
// with backchannel words.
var defaultFiller = []string{
	"but", "and", "or", "like", "you know", "i mean", "actually",
	"well", "so", "anyway", "basically", "essentially", "practically",
	"kind of", "sort of", "somehow", "somewhat", "quite", "really",
	"very", "pretty", "honestly", "seriously", "literally",
}

// Articles and short prepositions dropped before classification. They never
// influence the decision; removing them reduces noise from STT fragments.
var defaultStopWords = []string{"a", "an", "the", "to", "in", "on", "at"}

// Default returns the built-in lexicon.
func Default() *Lexicon {
	return &Lexicon{
		Ignore:    NewPhraseSet(defaultIgnore),
		Interrupt: NewPhraseSet(defaultInterrupt),
		Filler:    NewPhraseSet(defaultFiller),
		StopWords: NewPhraseSet(defaultStopWords),
		Debounce:  DefaultDebounce,
	}
}
