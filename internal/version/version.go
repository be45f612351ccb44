package version

const VERSION = "v1.0.0"

const UPDATE_MESSAGE = "Adds Option-tap centering and automatic recovery when the event tap is disabled."
