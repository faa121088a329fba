package expreplay

import "errors"

// BufferError implements errors unique to an experience replay
// buffer.
type BufferError struct {
	Op  string
	Err error
}

// Error satisifes the error interface
func (e *BufferError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

var errEmptyBuffer error = errors.New("buffer empty")

var errInsufficientSamples = errors.New("fewer transitions than batch size")

// IsInsufficientSamples returns whether or not an error reports that
// there are too few transitions in the buffer to draw a full
// minibatch without replacement.
func IsInsufficientSamples(err error) bool {
	if bufferErr, ok := err.(*BufferError); ok {
		err = bufferErr.Err
	}
	return err == errInsufficientSamples
}

// IsEmptyBuffer returns whether or not an error reports that a
// replay buffer is empty.
func IsEmptyBuffer(err error) bool {
	if bufferErr, ok := err.(*BufferError); ok {
		err = bufferErr.Err
	}
	return err == errEmptyBuffer
}
