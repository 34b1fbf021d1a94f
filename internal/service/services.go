package service

import (
	"github.com/taskboard-app/taskboard/internal/config"
	"github.com/taskboard-app/taskboard/internal/repository"
	"github.com/taskboard-app/taskboard/internal/store"
	"github.com/taskboard-app/taskboard/internal/token"
)

type Services struct {
	Session    *SessionService
	Permission *PermissionService
	Dashboard  *DashboardService
	Member     *MemberService
	Todo       *TodoService
	Tag        *TagService
}

func NewServices(repos *repository.Repositories, kv store.Store, cfg *config.Config) *Services {
	codec := token.NewCodec(cfg.JWTSecret)
	refreshStore := token.NewRefreshStore(kv)

	return &Services{
		Session:    NewSessionService(repos.User, codec, refreshStore, cfg),
		Permission: NewPermissionService(repos.Dashboard, repos.Member),
		Dashboard:  NewDashboardService(repos.Dashboard, repos.User),
		Member:     NewMemberService(repos.Member, repos.User),
		Todo:       NewTodoService(repos.Todo, repos.Tag),
		Tag:        NewTagService(repos.Tag),
	}
}
