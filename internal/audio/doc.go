// Package audio produces the volume stream that drives particle spawning.
//
// A Meter reads the default microphone through portaudio and maps the most
// recent FFTSize samples to a volume the way a browser AnalyserNode does:
// Blackman window, magnitude smoothing, decibel clamp to [MinDB, MaxDB],
// byte scaling, then the mean byte over 100. A Synth fakes a voice with an
// LFO envelope plus syllable bursts for headless runs. Both keep a ring of
// raw samples so an analyzer can ship the last interval of audio.
package audio
