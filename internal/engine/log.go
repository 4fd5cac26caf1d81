package engine

import (
	"fmt"
	"time"
)

func (s *Simulator) logAt(timeStamp time.Duration, format string, args ...interface{}) {
	if !s.LogEnabled || s.LogWriter == nil {
		return
	}
	ts := timeStamp.Round(time.Millisecond).Seconds()
	prefix := fmt.Sprintf("[%6.2fs] ", ts)
	fmt.Fprintf(s.LogWriter, prefix+format+"\n", args...)
}

func (s *Simulator) logStaticf(format string, args ...interface{}) {
	if !s.LogEnabled || s.LogWriter == nil {
		return
	}
	fmt.Fprintf(s.LogWriter, format+"\n", args...)
}
