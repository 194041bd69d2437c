package flash

// Тексты уведомлений, которые видит посетитель.
const (
	MsgContactSent     = "Sua mensagem foi enviada com sucesso! Agradecemos o seu contato."
	MsgContactInvalid  = "Por favor, preencha todos os campos obrigatórios."
	MsgUnknownForm     = "Tipo de formulário desconhecido."
	MsgContactFailed   = "Ocorreu um erro ao enviar sua mensagem. Por favor, tente novamente."
	MsgInvalidLogin    = "Login inválido. Verifique o e-mail e a senha."
	MsgRoleDenied      = "Acesso restrito. Seu perfil não tem permissão para acessar o sistema."
	MsgLoginRequired   = "Por favor, faça login para acessar esta página."
	MsgLoggedOut       = "Você foi desconectado com sucesso."
	MsgInternalError   = "Erro interno. Tente novamente mais tarde."
	MsgTooManyRequests = "Muitas tentativas em pouco tempo. Aguarde um momento e tente novamente."
)
