package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/dfs/internal/config"
	"github.com/blues/dfs/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthLogic 注册登录业务逻辑
type AuthLogic struct {
	db  *gorm.DB
	cfg config.JWTConfig
}

// NewAuthLogic 创建认证业务逻辑
func NewAuthLogic(db *gorm.DB, cfg config.JWTConfig) *AuthLogic {
	return &AuthLogic{db: db, cfg: cfg}
}

// Claims 令牌声明
type Claims struct {
	UserId int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Register 注册用户，密码bcrypt加密；管理员账号不开放注册
func (a *AuthLogic) Register(name, email, password, role string) (*model.User, error) {
	if name == "" || email == "" {
		return nil, Validation("姓名和邮箱不能为空")
	}
	if len(password) < 8 {
		return nil, Validation("密码长度不能少于8位")
	}
	if role != string(model.UserRoleBeneficiary) && role != string(model.UserRoleDonor) {
		return nil, Validation(fmt.Sprintf("无效的用户角色: %s", role))
	}

	var existing model.User
	err := a.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, Conflict("该邮箱已注册")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     model.UserRole(role),
		Active:   true,
	}
	if err := a.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Login 校验密码并签发令牌
func (a *AuthLogic) Login(email, password string) (string, *model.User, error) {
	var user model.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, Forbidden("邮箱或密码错误")
		}
		return "", nil, err
	}

	if !user.Active {
		return "", nil, Forbidden("账号已被禁用")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, Forbidden("邮箱或密码错误")
	}

	token, err := a.IssueToken(&user)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// IssueToken 签发HS256令牌
func (a *AuthLogic) IssueToken(user *model.User) (string, error) {
	expireHours := a.cfg.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}

	now := time.Now()
	claims := Claims{
		UserId: user.Id,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.cfg.Secret))
}

// GetUser 获取用户信息
func (a *AuthLogic) GetUser(id int64) (*model.User, error) {
	var user model.User
	if err := a.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("用户不存在")
		}
		return nil, err
	}
	return &user, nil
}
