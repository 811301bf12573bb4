package recruit_constants

// Wizard sessions and their pending prompts share the interactive lifetime of
// the prompt itself.
const SessionTTLSeconds = 180

// Sweep cadence for dropping expired wizard sessions/prompts.
const SessionSweepSeconds = 60

// Panels live three days from publication. Joins and leaves do NOT refresh
// the expiry.
const RosterTTLSeconds = 3 * 24 * 60 * 60

// Recruitment free-text messages are capped at the platform's input length.
const MaxRecruitMessageLength = 100

// Background worker sizing.
const WorkerQueueSize = 64
const WorkerCount = 4
