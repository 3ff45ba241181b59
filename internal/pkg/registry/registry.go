package registry

import (
	"fmt"
	"sort"

	"github.com/gin-gonic/gin"
)

// ModuleContext 模块初始化所需的上下文
type ModuleContext struct {
	Router gin.IRouter
}

// Module 路由模块
type Module interface {
	// Name 返回模块名称
	Name() string

	// Init 注册路由
	Init(ctx *ModuleContext) error

	// Priority 返回初始化优先级（数字越小越先初始化）
	Priority() int
}

// Registry 模块注册表
type Registry struct {
	modules map[string]Module
}

func New() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register 注册模块，同名模块后注册的覆盖先注册的
func (r *Registry) Register(modules ...Module) {
	for _, m := range modules {
		r.modules[m.Name()] = m
	}
}

// Modules 按优先级返回已注册模块，优先级相同按名称排序
func (r *Registry) Modules() []Module {
	modules := make([]Module, 0, len(r.modules))
	for _, m := range r.modules {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool {
		if modules[i].Priority() != modules[j].Priority() {
			return modules[i].Priority() < modules[j].Priority()
		}
		return modules[i].Name() < modules[j].Name()
	})
	return modules
}

// InitModules 按优先级初始化所有模块
func (r *Registry) InitModules(ctx *ModuleContext) error {
	for _, m := range r.Modules() {
		if err := m.Init(ctx); err != nil {
			return fmt.Errorf("init module %s: %w", m.Name(), err)
		}
	}
	return nil
}
