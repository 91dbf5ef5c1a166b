package config

type WorkerKeyStruct struct {
	ImportQuizQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ImportQuizQueue: "import_quiz_queue",
}
