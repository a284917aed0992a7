package scoring

// InteractionKind identifies the screening activity an interaction came from
type InteractionKind string

const (
	InteractionVoice InteractionKind = "voice"
	InteractionImage InteractionKind = "image"
)

const (
	imageCorrectStep   = 0.25
	imageIncorrectStep = 0.1
)

// Interaction is one raw event from the interactive screening session
type Interaction struct {
	Kind       InteractionKind `json:"kind" validate:"required,oneof=voice image"`
	Target     string          `json:"target,omitempty"`
	Transcript string          `json:"transcript,omitempty"`
	Correct    bool            `json:"correct,omitempty"`
	ReactionMs *float64        `json:"reaction_ms,omitempty" validate:"omitempty,gte=0"`
}

// Recorder derives speech, image and reaction metrics from interactions.
// The zero value is not ready for use; call NewRecorder.
type Recorder struct {
	speech        float64
	image         float64
	reactionTotal float64
	reactionCount int
}

// NewRecorder starts speech and image at their neutral values
func NewRecorder() *Recorder {
	return &Recorder{
		speech: DefaultSpeechAccuracy,
		image:  DefaultImageAccuracy,
	}
}

// Record folds one interaction into the running metrics
func (r *Recorder) Record(in Interaction) {
	switch in.Kind {
	case InteractionVoice:
		r.speech = 0.5*r.speech + 0.5*Similarity(in.Transcript, in.Target)
	case InteractionImage:
		if in.Correct {
			r.image = clamp01(r.image + imageCorrectStep)
		} else {
			r.image = clamp01(r.image - imageIncorrectStep)
		}
	}

	if in.ReactionMs != nil {
		r.reactionTotal += *in.ReactionMs / 1000
		r.reactionCount++
	}
}

// Metrics returns the derived values. Average reaction time is in seconds.
func (r *Recorder) Metrics() Metrics {
	speech := r.speech
	image := r.image
	reaction := DefaultAvgReactionTime
	if r.reactionCount > 0 {
		reaction = r.reactionTotal / float64(r.reactionCount)
	}
	return Metrics{
		SpeechAccuracy:  &speech,
		ImageAccuracy:   &image,
		AvgReactionTime: &reaction,
	}
}

// DeriveMetrics replays interactions through a fresh Recorder
func DeriveMetrics(interactions []Interaction) Metrics {
	r := NewRecorder()
	for _, in := range interactions {
		r.Record(in)
	}
	return r.Metrics()
}
