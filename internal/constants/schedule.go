package constants

// ScheduleRunIDFormat names scheduled runs; the argument is a run counter.
const ScheduleRunIDFormat = "run_%d"
