package pkg

type Action string

const (
	ActionResign       Action = "Resign"
	ActionNewGameOffer Action = "New Game"
	ActionExit         Action = "Exit"
	ActionWin          Action = "Win"
	ActionLose         Action = "Lose"
)
