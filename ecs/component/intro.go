package component

// IntroSequence is driven by a script until it reports completion.
type IntroSequence struct {
	Script string
	Frame  int
	Done   bool
}

var IntroSequenceComponent = NewComponent[IntroSequence]()
