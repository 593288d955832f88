package control

import "joydisplay-go/bus"

// joy/<value>, all retained.
func joyBase() bus.Topic { return bus.T("joy") }

func TopicPosition() bus.Topic  { return joyBase().Append("position") }
func TopicIntensity() bus.Topic { return joyBase().Append("intensity") }
func TopicFlags() bus.Topic     { return joyBase().Append("flags") }

// TopicAll matches every joy/* topic.
func TopicAll() bus.Topic { return joyBase().Append("#") }
